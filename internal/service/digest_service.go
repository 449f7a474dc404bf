package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/montyapp/monty-backend/internal/domain"
	"github.com/montyapp/monty-backend/internal/util"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

const digestModel = "gemini-2.0-flash"

const digestSystemPrompt = "Ты — Джимми, дружелюбный финансовый ассистент."

// DigestService produces the daily spending digest and delivers it to the
// budget's members. With no Gemini client the plain summary is sent instead
// of the generated text.
type DigestService struct {
	transactionRepo domain.TransactionRepository
	settings        *SettingsService
	notifier        Notifier
	client          *genai.Client
}

// NewDigestService creates a new DigestService. client may be nil.
func NewDigestService(transactionRepo domain.TransactionRepository, settings *SettingsService, notifier Notifier, client *genai.Client) *DigestService {
	return &DigestService{
		transactionRepo: transactionRepo,
		settings:        settings,
		notifier:        notifier,
		client:          client,
	}
}

// TodaySummary returns today's (Almaty) spending grouped by category, one
// line per category.
func (s *DigestService) TodaySummary(now time.Time) (string, error) {
	start := util.DayStart(now)
	end := start.AddDate(0, 0, 1)

	transactions, err := s.transactionRepo.QueryCategorized(start, end)
	if err != nil {
		return "", err
	}
	if len(transactions) == 0 {
		return "Сегодня пока нет трат 💤", nil
	}

	type categoryTotal struct {
		icon  string
		name  string
		total int64
	}
	byCategory := make(map[int32]*categoryTotal)
	var order []int32
	for _, t := range transactions {
		ct, ok := byCategory[t.CategoryID]
		if !ok {
			ct = &categoryTotal{icon: t.CategoryIcon, name: t.CategoryName}
			byCategory[t.CategoryID] = ct
			order = append(order, t.CategoryID)
		}
		ct.total += t.Amount
	}

	var lines []string
	for _, id := range order {
		ct := byCategory[id]
		lines = append(lines, fmt.Sprintf("%s %s: %s тг", ct.icon, ct.name, groupDigits(ct.total)))
	}
	return strings.Join(lines, "\n"), nil
}

// Generate builds the digest text for today. Generation failures fall back
// to the plain summary so the digest still goes out.
func (s *DigestService) Generate(ctx context.Context, now time.Time) (string, error) {
	summary, err := s.TodaySummary(now)
	if err != nil {
		return "", err
	}
	if s.client == nil {
		return summary, nil
	}

	typed, err := s.settings.Typed()
	if err != nil {
		return "", err
	}

	prompt := s.buildPrompt(summary, typed)
	resp, err := s.client.Models.GenerateContent(ctx, digestModel, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: digestSystemPrompt}}},
		Temperature:       genai.Ptr[float32](0.7),
		MaxOutputTokens:   300,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Digest generation failed, falling back to plain summary")
		return summary, nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return summary, nil
	}
	return text, nil
}

func (s *DigestService) buildPrompt(summary string, typed *domain.TypedSettings) string {
	var goal string
	if typed.TargetAmount > 0 {
		goal = fmt.Sprintf("Цель — накопить %s тг", groupDigits(typed.TargetAmount))
		if !typed.TargetDate.IsZero() {
			goal += " к " + typed.TargetDate.Format("2006-01-02")
		}
		goal += ".\n\n"
	}

	return fmt.Sprintf(`Ты Джимми — финансовый ассистент семейного бюджета.
%sСегодняшние траты:
%s

Напиши короткий (3-5 предложений), дружелюбный и слегка ироничный отчёт об их дне.
Используй эмодзи. Будь позитивным, но если траты высокие — мягко пожури.
Добавь совет или мотивацию копить дальше.`, goal, summary)
}

// Send generates today's digest and broadcasts it. Delivery failures are
// logged by the notifier and do not fail the digest.
func (s *DigestService) Send(ctx context.Context, now time.Time) (string, error) {
	digest, err := s.Generate(ctx, now)
	if err != nil {
		return "", err
	}
	_ = s.notifier.Broadcast(ctx, digest)
	return digest, nil
}

// groupDigits renders n with thousands separators, e.g. 1234567 -> "1,234,567".
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
