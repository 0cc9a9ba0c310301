// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// SearchService is the centre: chunk, embed, index, rank. The
// remaining services cover settings, documents, corpus loading,
// fetching, and the text utilities (extract, classify, kpi, chart,
// convert).
package services
