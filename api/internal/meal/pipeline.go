package meal

import (
	"context"
	"fmt"
	"log/slog"

	"telegram-nutrition-analyzer/api/internal/apperr"
	"telegram-nutrition-analyzer/api/internal/llm"
)

// Pipeline выполняет один запуск: фото за сегодня → анализ каждого → сводка → отправка.
// Фото обрабатываются строго по одному, в порядке получения.
type Pipeline struct {
	Source Source
	Engine llm.Engine
	Logger *slog.Logger
}

func New(src Source, eng llm.Engine, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Source: src, Engine: eng, Logger: logger}
}

// Run возвращает Result с конечным состоянием. При ошибке State == StateFailed,
// а частичные анализы не отправляются.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	res := Result{State: StateFetching}
	fail := func(err error) (Result, error) {
		p.Logger.Error("pipeline failed", "state", res.State, "kind", apperr.KindOf(err), "err", err)
		res.State = StateFailed
		res.Analyses = nil
		return res, err
	}

	p.Logger.Info("fetching today's meal photos from Telegram")
	photos, err := p.Source.TodayPhotos(ctx)
	if err != nil {
		return fail(apperr.Wrap(apperr.Transport, "getUpdates", err))
	}
	res.Photos = len(photos)

	if len(photos) == 0 {
		if err := p.Source.SendText(ctx, NoPhotosNotice); err != nil {
			return fail(apperr.Wrap(apperr.Transport, "sendMessage", err))
		}
		res.State = StateEmpty
		p.Logger.Info("no meal photos found for today")
		return res, nil
	}

	p.Logger.Info("found meal photos", "count", len(photos))
	res.State = StateAnalyzing
	res.Analyses = make([]string, 0, len(photos))
	for i, ph := range photos {
		p.Logger.Info(fmt.Sprintf("analyzing photo %d of %d", i+1, len(photos)), "captured_at", ph.CapturedAt)

		url, err := p.Source.PhotoURL(ctx, ph.FileID)
		if err != nil {
			return fail(apperr.Wrap(apperr.Transport, fmt.Sprintf("getFile photo %d", i+1), err))
		}
		analysis, err := p.analyze(ctx, url)
		if err != nil {
			return fail(apperr.Wrap(apperr.Inference, fmt.Sprintf("analyze photo %d", i+1), err))
		}
		p.Logger.Debug("photo analyzed", "index", i+1, "chars", len(analysis))
		res.Analyses = append(res.Analyses, analysis)
	}

	res.State = StateSummarizing
	p.Logger.Info("summarizing daily intake")
	summary, err := p.summarize(ctx, res.Analyses)
	if err != nil {
		return fail(apperr.Wrap(apperr.Inference, "summarize", err))
	}
	res.Summary = summary

	if err := p.Source.SendText(ctx, SummaryHeader+summary); err != nil {
		return fail(apperr.Wrap(apperr.Transport, "sendMessage", err))
	}
	res.State = StateDelivered
	p.Logger.Info("summary sent to Telegram", "engine", p.Engine.Name(), "model", p.Engine.GetModel())
	return res, nil
}

func (p *Pipeline) analyze(ctx context.Context, photoURL string) (string, error) {
	return p.Engine.Complete(ctx, llm.Request{
		Text:      AnalyzePrompt,
		ImageURL:  photoURL,
		MaxTokens: analyzeMaxTokens,
	})
}

func (p *Pipeline) summarize(ctx context.Context, analyses []string) (string, error) {
	return p.Engine.Complete(ctx, llm.Request{
		Text:      SummaryPrompt(analyses),
		MaxTokens: summaryMaxTokens,
	})
}
