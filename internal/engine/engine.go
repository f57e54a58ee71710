// Package engine implements the rule-based health classifier and alert
// generator for monitored projects. Evaluation is pure, synchronous
// computation over an in-memory snapshot: every date comparison uses the
// single reference time passed by the caller, and nothing is cached across
// passes.
package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/Veraticus/client-pulse/internal/model"
)

const (
	// Sentiment scores below this mark a communication as negative.
	negativeSentimentCeiling = 40
	// Milestones due within this many days produce a heads-up alert.
	dueSoonWindowDays = 3
	// Projects quiet for longer than this compound into a stalled alert.
	stalledAfterDays = 7
)

// Result is the outcome of one evaluation pass over a single project: the
// generated alerts in rule order, and the recomputed health classification.
// Health is a deterministic function of the milestone rule's outcome for the
// pass; callers apply it to the project to finalize the snapshot.
type Result struct {
	Health model.Health
	Alerts []model.Alert
}

// Evaluate runs all rules against one project at the given reference time.
//
// Rules run in a fixed order: milestone deadline, client blocker, stalled
// project. A project may accrue more than one alert per pass. The returned
// alert sequence preserves rule order; severity-based display ordering and
// dismissed-alert filtering are presentation concerns and never happen here.
func Evaluate(p model.Project, ref time.Time) Result {
	var alerts []model.Alert

	health, milestoneAlert := evaluateMilestone(&p, ref)
	if milestoneAlert != nil {
		alerts = append(alerts, *milestoneAlert)
	}

	if blocker := evaluateClientBlocker(&p, ref); blocker != nil {
		alerts = append(alerts, *blocker)
	}

	// The stalled rule is a compounding signal, not an independent trigger:
	// it fires only when health already reflects risk, either recomputed by
	// the milestone rule this pass or pre-seeded on the incoming snapshot.
	effective := health
	if effective == model.HealthOnTrack && p.Health != "" {
		effective = p.Health
	}
	if stalled := evaluateStalled(&p, ref, effective); stalled != nil {
		alerts = append(alerts, *stalled)
	}

	return Result{Health: health, Alerts: alerts}
}

// evaluateMilestone applies the milestone deadline rule and returns the
// health classification for this pass. Only Pending milestones participate;
// a missing due date is treated as not overdue so a malformed snapshot can
// never produce a spurious High-severity alert.
func evaluateMilestone(p *model.Project, ref time.Time) (model.Health, *model.Alert) {
	m := p.NextMilestone
	if m.Status != model.MilestonePending || m.DueDate.IsZero() {
		return model.HealthOnTrack, nil
	}

	if m.DueDate.Before(ref) {
		if latest := p.LatestEmail(); latest != nil && latest.SentimentScore < negativeSentimentCeiling {
			return model.HealthAtRisk, &model.Alert{
				ID:              model.AlertID("milestone-critical", p.ID),
				ProjectID:       p.ID,
				Type:            model.AlertRisk,
				Severity:        model.SeverityHigh,
				Message:         "CRITICAL: Milestone overdue AND client frustration detected.",
				SuggestedAction: "Urgent: Call client to de-escalate.",
			}
		}
		return model.HealthDelayed, &model.Alert{
			ID:              model.AlertID("milestone-overdue", p.ID),
			ProjectID:       p.ID,
			Type:            model.AlertRisk,
			Severity:        model.SeverityMedium,
			Message:         fmt.Sprintf("Milestone %q is overdue.", m.Name),
			SuggestedAction: "Reschedule milestone.",
		}
	}

	if days := daysUntil(ref, m.DueDate); days >= 0 && days <= dueSoonWindowDays {
		return model.HealthOnTrack, &model.Alert{
			ID:              model.AlertID("milestone-soon", p.ID),
			ProjectID:       p.ID,
			Type:            model.AlertRisk,
			Severity:        model.SeverityLow,
			Message:         fmt.Sprintf("Milestone %q due in %d days.", m.Name, days),
			SuggestedAction: "Send reminder.",
		}
	}

	return model.HealthOnTrack, nil
}

// evaluateClientBlocker emits at most one alert, referencing the first
// overdue client task in input order. Multiple overdue client tasks do not
// multiply alerts.
func evaluateClientBlocker(p *model.Project, ref time.Time) *model.Alert {
	for _, t := range p.Tasks {
		if t.Assignee != model.AssigneeClient || t.Status != model.TaskPending {
			continue
		}
		if t.DueDate.IsZero() || !t.DueDate.Before(ref) {
			continue
		}
		return &model.Alert{
			ID:              model.AlertID("client-blocker", p.ID),
			ProjectID:       p.ID,
			Type:            model.AlertBlocker,
			Severity:        model.SeverityHigh,
			Message:         fmt.Sprintf("Client overdue on %q.", t.Name),
			SuggestedAction: "Review blocker and nudge client.",
		}
	}
	return nil
}

func evaluateStalled(p *model.Project, ref time.Time, health model.Health) *model.Alert {
	if p.LastActivityDate.IsZero() {
		return nil
	}
	quiet := daysBetween(ref, p.LastActivityDate)
	if quiet <= stalledAfterDays || health == model.HealthOnTrack {
		return nil
	}
	return &model.Alert{
		ID:              model.AlertID("stalled", p.ID),
		ProjectID:       p.ID,
		Type:            model.AlertStalled,
		Severity:        model.SeverityMedium,
		Message:         fmt.Sprintf("No activity for %d days on likely stalled project.", quiet),
		SuggestedAction: `Send a "checking in" email.`,
	}
}

// RunAnalysis evaluates every project in input order, finalizing each
// project's Health in place, and returns the flattened alert sequence with
// per-project rule order preserved.
func RunAnalysis(projects []model.Project, ref time.Time) []model.Alert {
	var alerts []model.Alert
	for i := range projects {
		result := Evaluate(projects[i], ref)
		projects[i].Health = result.Health
		alerts = append(alerts, result.Alerts...)
	}
	return alerts
}

// EnrichSentiment scores any communication that does not carry a sentiment
// score yet, using the supplied local scorer. Projects already enriched by
// the external analyzer are left untouched: the analyzer's score supersedes
// the heuristic for every communication on that project.
func EnrichSentiment(projects []model.Project, score func(string) int) {
	for i := range projects {
		p := &projects[i]
		if p.SentimentSource == model.SentimentExternalAnalysis {
			continue
		}
		for j := range p.Emails {
			if p.Emails[j].SentimentScore == 0 {
				p.Emails[j].SentimentScore = score(p.Emails[j].Body)
			}
		}
		if len(p.Emails) > 0 {
			p.SentimentSource = model.SentimentLocalHeuristic
		}
	}
}

// daysUntil is the whole-day count from ref to a future due date, rounding
// partial days up.
func daysUntil(ref, due time.Time) int {
	return int(math.Ceil(due.Sub(ref).Hours() / 24))
}

// daysBetween is the whole-day difference between two instants, ceiling
// rounding on the absolute difference.
func daysBetween(a, b time.Time) int {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}
