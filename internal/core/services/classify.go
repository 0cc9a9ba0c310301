package services

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/loupe-labs/loupe-cli/internal/core/domain"
	"github.com/loupe-labs/loupe-cli/internal/core/ports/driving"
	"github.com/loupe-labs/loupe-cli/internal/logger"
)

// Ensure ClassifyService implements the interface.
var _ driving.ClassifyService = (*ClassifyService)(nil)

// scoreDivisor normalises raw match counts: three pattern hits count
// as full confidence.
const scoreDivisor = 3.0

// maxSecondaryIntents bounds the secondary intent list.
const maxSecondaryIntents = 3

// intentPatterns pair each intent with its trigger expressions. Order
// matters: ties in score resolve to the earlier intent.
var intentPatterns = []struct {
	intent   string
	patterns []*regexp.Regexp
}{
	{"inquiry", compilePatterns(
		`\b(question|wondering|curious|clarification|information|details|help)\b`,
		`\b(what|when|where|who|why|how)\b.*\?`,
		`\b(could you|can you|would you).*\b(explain|tell|provide|share)\b`,
	)},
	{"complaint", compilePatterns(
		`\b(complaint|issue|problem|disappointed|frustrated|unhappy|angry)\b`,
		`\b(not working|broken|failed|error|mistake)\b`,
		`\b(terrible|awful|worst|horrible|unacceptable)\b`,
	)},
	{"request", compilePatterns(
		`\b(please|kindly|request|need|require|would like)\b`,
		`\b(send|provide|share|give|deliver|forward)\b.*\b(me|us)\b`,
		`\b(need|want|looking for)\b`,
	)},
	{"feedback", compilePatterns(
		`\b(feedback|suggestion|recommend|improve|enhancement)\b`,
		`\b(think|believe|feel|opinion)\b.*\b(should|could|would)\b`,
		`\b(great|excellent|good|nice|appreciate|love)\b`,
	)},
	{"meeting", compilePatterns(
		`\b(meeting|schedule|appointment|call|discuss|conference)\b`,
		`\b(available|availability|free time|calendar)\b`,
		`\b(reschedule|postpone|cancel|confirm)\b`,
	)},
	{"order", compilePatterns(
		`\b(order|purchase|buy|payment|invoice|receipt)\b`,
		`\b(shipping|delivery|tracking|status)\b`,
		`\b(product|item|package)\b`,
	)},
	{"urgent", compilePatterns(
		`\b(urgent|asap|immediately|critical|emergency|priority)\b`,
		`\b(time-sensitive|deadline|due)\b`,
		`!!+|\bimportant\b`,
	)},
	{"follow_up", compilePatterns(
		`\b(follow up|following up|checking in|reminder)\b`,
		`\b(haven't heard|waiting for|still pending)\b`,
		`\b(previous|earlier|sent|mentioned)\b.*\b(email|message)\b`,
	)},
	{"thank_you", compilePatterns(
		`\b(thank|thanks|grateful|appreciate|gratitude)\b`,
		`\b(wonderful|excellent|helpful)\b.*\b(work|help|support)\b`,
	)},
	{"application", compilePatterns(
		`\b(apply|application|position|job|role|opportunity)\b`,
		`\b(resume|cv|cover letter|portfolio)\b`,
		`\b(interested in|applying for)\b`,
	)},
}

// Surface feature patterns.
var (
	greetingPattern = regexp.MustCompile(`(?i)\b(hi|hello|dear|hey)\b`)
	closingPattern  = regexp.MustCompile(`(?i)\b(regards|sincerely|thanks|best)\b`)
	urlPattern      = regexp.MustCompile(`https?://`)
	addressPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

// ClassifyService determines email intent with rule-based pattern
// matching. It holds no state; all patterns are package-level.
type ClassifyService struct{}

// NewClassifyService creates a new intent classification service.
func NewClassifyService() *ClassifyService {
	return &ClassifyService{}
}

// Classify determines the primary and secondary intents of one email.
func (s *ClassifyService) Classify(ctx context.Context, text string) (*domain.IntentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: email text is empty", domain.ErrInvalidInput)
	}

	type scored struct {
		intent string
		score  float64
	}
	var matched []scored
	for _, entry := range intentPatterns {
		count := 0
		for _, pattern := range entry.patterns {
			count += len(pattern.FindAllString(text, -1))
		}
		if count > 0 {
			matched = append(matched, scored{
				intent: entry.intent,
				score:  math.Min(float64(count)/scoreDivisor, 1.0),
			})
		}
	}

	result := &domain.IntentResult{
		EmailLength: len(text),
		WordCount:   len(strings.Fields(text)),
	}

	if len(matched) == 0 {
		result.Intent = domain.IntentGeneral
		result.Confidence = 0.5
		result.Explanation = "No specific intent patterns detected"
		return result, nil
	}

	// Stable sort keeps the pattern-table order on equal scores.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	result.Intent = matched[0].intent
	result.Confidence = round3(matched[0].score)
	result.Explanation = fmt.Sprintf("Detected %s intent based on keyword analysis", matched[0].intent)

	for _, m := range matched[1:] {
		if len(result.Secondary) == maxSecondaryIntents {
			break
		}
		result.Secondary = append(result.Secondary, domain.IntentScore{
			Intent:     m.intent,
			Confidence: round3(m.score),
		})
	}

	logger.Debug("Classify: intent=%s confidence=%.3f secondary=%d",
		result.Intent, result.Confidence, len(result.Secondary))

	return result, nil
}

// ClassifyBatch classifies several emails and aggregates the intent
// distribution. An unclassifiable item is recorded under IntentError
// rather than failing the batch.
func (s *ClassifyService) ClassifyBatch(ctx context.Context, texts []string) (*domain.IntentBatch, error) {
	batch := &domain.IntentBatch{
		Results:      make([]domain.IntentResult, 0, len(texts)),
		Distribution: make(map[string]int),
		Total:        len(texts),
	}

	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.Classify(ctx, text)
		if err != nil {
			result = &domain.IntentResult{
				Intent:      domain.IntentError,
				Explanation: err.Error(),
				EmailLength: len(text),
			}
		}
		batch.Results = append(batch.Results, *result)
		batch.Distribution[result.Intent]++
	}

	return batch, nil
}

// Features extracts surface signals from an email text. Empty input is
// permitted and yields zero-valued features.
func (s *ClassifyService) Features(ctx context.Context, text string) (*domain.EmailFeatures, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &domain.EmailFeatures{
		HasGreeting:      greetingPattern.MatchString(text),
		HasClosing:       closingPattern.MatchString(text),
		QuestionCount:    strings.Count(text, "?"),
		ExclamationCount: strings.Count(text, "!"),
		HasURL:           urlPattern.MatchString(text),
		HasEmailAddress:  addressPattern.MatchString(text),
	}, nil
}

// round3 rounds to three decimal places for presentation.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
