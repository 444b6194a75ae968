// Package pipeline provides the orchestration of a single search-and-apply run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/job-autoapply/internal/config"
	"github.com/jonathan/job-autoapply/internal/observability"
	"github.com/jonathan/job-autoapply/internal/types"
)

// VacancySource searches, fetches and applies to vacancies.
// Apply never fails; request errors come back as an error payload.
type VacancySource interface {
	Search(ctx context.Context, profile types.SearchProfile) ([]types.Vacancy, error)
	Details(ctx context.Context, vacancyID string) (types.Vacancy, error)
	Apply(ctx context.Context, vacancy types.Vacancy, coverLetter string, simulate bool) types.ApplyResponse
}

// LetterWriter drafts cover letters.
type LetterWriter interface {
	Available() bool
	Generate(ctx context.Context, vacancy types.Vacancy, candidate string, simulate bool) (string, error)
}

// ApplicationLog is the durable dedup log.
type ApplicationLog interface {
	Initialize(ctx context.Context) error
	Exists(ctx context.Context, vacancyID string) (bool, error)
	Append(ctx context.Context, entry *types.ApplicationLogEntry) error
}

// ProgressEvent represents a decision taken during a run
type ProgressEvent struct {
	RunID     string `json:"run_id"`
	Step      string `json:"step"`
	ProfileID string `json:"profile_id,omitempty"`
	VacancyID string `json:"vacancy_id,omitempty"`
	Message   string `json:"message"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// Progress step names.
const (
	StepProfiles = "profiles"
	StepSearch   = "search"
	StepCapped   = "capped"
	StepLogged   = "logged"
	StepFinished = "finished"
)

// RunOptions holds the collaborators and file locations of a run
type RunOptions struct {
	SearchConfigPath string
	ModeConfigPath   string
	// DefaultDryRun applies when the mode file has no dry_run key.
	DefaultDryRun bool

	Jobs    VacancySource
	Letters LetterWriter
	Log     ApplicationLog

	Logger     *slog.Logger
	Printer    *observability.Printer
	OnProgress ProgressCallback
}

type run struct {
	opts    RunOptions
	id      uuid.UUID
	logger  *slog.Logger
	summary types.RunSummary
}

// RunOnce executes one full pass over the active profiles. A non-nil
// dryRunOverride replaces the mode file's dry_run for the whole run.
func RunOnce(ctx context.Context, opts RunOptions, dryRunOverride *bool) (types.RunSummary, error) {
	r := &run{opts: opts, id: uuid.New(), logger: opts.Logger}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("run_id", r.id.String())

	if err := opts.Log.Initialize(ctx); err != nil {
		return r.summary, fmt.Errorf("failed to initialize application log: %w", err)
	}

	mode, err := config.LoadRunMode(opts.ModeConfigPath, opts.DefaultDryRun)
	if err != nil {
		return r.summary, err
	}
	profiles, err := config.LoadSearchProfiles(opts.SearchConfigPath)
	if err != nil {
		return r.summary, err
	}

	dryRun := mode.DryRun
	if dryRunOverride != nil {
		dryRun = *dryRunOverride
	}

	active := mode.SelectActive(profiles)
	names := make([]string, 0, len(active))
	for _, p := range active {
		names = append(names, p.Name)
	}
	r.logger.Info("loaded active profiles", "count", len(active), "profiles", names,
		"max_applications", mode.MaxApplications, "send_applications", mode.SendApplications, "dry_run", dryRun)
	r.emit(StepProfiles, "", "", fmt.Sprintf("%d active profiles", len(active)))
	opts.Printer.PrintActiveProfiles(active, *mode, dryRun)

	for _, profile := range active {
		if r.capped(mode, profile.ID) {
			break
		}
		done, err := r.runProfile(ctx, profile, mode, dryRun)
		if err != nil {
			return r.summary, err
		}
		if done {
			break
		}
	}

	r.logger.Info("run finished", "processed", r.summary.Processed, "logged", r.summary.Logged)
	r.emit(StepFinished, "", "", fmt.Sprintf("processed=%d logged=%d", r.summary.Processed, r.summary.Logged))
	return r.summary, nil
}

// runProfile processes one profile. It reports true once the global cap stops the run.
func (r *run) runProfile(ctx context.Context, profile types.SearchProfile, mode *types.RunModeConfig, dryRun bool) (bool, error) {
	logger := r.logger.With("profile", profile.ID)
	logger.Info("searching vacancies", "query", profile.Query)
	r.emit(StepSearch, profile.ID, "", "searching "+profile.Name)

	found, err := r.opts.Jobs.Search(ctx, profile)
	if err != nil {
		return false, fmt.Errorf("failed to search vacancies for profile %s: %w", profile.ID, err)
	}

	filtered := FilterVacancies(found, profile)
	logger.Debug("filtered vacancies", "found", len(found), "kept", len(filtered))

	fresh := make([]types.Vacancy, 0, len(filtered))
	for _, v := range filtered {
		seen, err := r.opts.Log.Exists(ctx, v.ID)
		if err != nil {
			return false, fmt.Errorf("failed to check application log: %w", err)
		}
		if seen {
			logger.Debug("skipping already logged vacancy", "vacancy_id", v.ID)
			continue
		}
		fresh = append(fresh, v)
	}

	limit := profile.EffectiveLimit(mode.MaxApplications)
	queue := truncate(fresh, limit)
	if len(queue) < len(fresh) {
		logger.Debug("truncated vacancies", "limit", limit, "dropped", len(fresh)-len(queue))
	}

	candidate := profile.CandidateProfile.Render()
	for _, vacancy := range queue {
		if r.capped(mode, profile.ID) {
			return true, nil
		}

		if err := r.process(ctx, profile, vacancy, candidate, mode, dryRun); err != nil {
			return false, err
		}
	}
	return false, nil
}

// capped reports whether the run-wide application cap is reached.
func (r *run) capped(mode *types.RunModeConfig, profileID string) bool {
	if r.summary.Logged < mode.MaxApplications {
		return false
	}
	r.logger.Info("reached max applications", "profile", profileID, "max_applications", mode.MaxApplications)
	r.emit(StepCapped, profileID, "", fmt.Sprintf("reached max applications (%d)", mode.MaxApplications))
	return true
}

// process handles a single vacancy: detail, letter, apply, persist.
func (r *run) process(ctx context.Context, profile types.SearchProfile, vacancy types.Vacancy, candidate string, mode *types.RunModeConfig, dryRun bool) error {
	r.summary.Processed++

	detailed, err := r.opts.Jobs.Details(ctx, vacancy.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch vacancy %s: %w", vacancy.ID, err)
	}

	simulateLetter := dryRun || !r.opts.Letters.Available()
	letter, err := r.opts.Letters.Generate(ctx, detailed, candidate, simulateLetter)
	if err != nil {
		return fmt.Errorf("failed to generate cover letter for vacancy %s: %w", detailed.ID, err)
	}

	resp := r.opts.Jobs.Apply(ctx, detailed, letter, dryRun || !mode.SendApplications)
	raw, err := resp.JSON()
	if err != nil {
		return fmt.Errorf("failed to serialize apply response: %w", err)
	}

	snippet := Snippet(letter)
	entry := &types.ApplicationLogEntry{
		RunID:              r.id,
		VacancyID:          detailed.ID,
		ProfileName:        profile.Name,
		Status:             deriveStatus(resp, mode.SendApplications, dryRun),
		CoverLetterSnippet: &snippet,
		RawResponse:        &raw,
	}
	if err := r.opts.Log.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to log application: %w", err)
	}
	r.summary.Logged++

	r.logger.Info("logged application", "profile", profile.ID, "vacancy_id", detailed.ID, "status", entry.Status)
	r.emit(StepLogged, profile.ID, detailed.ID, entry.Status)
	r.opts.Printer.PrintApplication(*entry, detailed)
	return nil
}

// emit calls the progress callback if configured
func (r *run) emit(step, profileID, vacancyID, message string) {
	if r.opts.OnProgress != nil {
		r.opts.OnProgress(ProgressEvent{
			RunID:     r.id.String(),
			Step:      step,
			ProfileID: profileID,
			VacancyID: vacancyID,
			Message:   message,
		})
	}
}
