// Package enrich answers self-service intents from the cached profile, or
// from the external lookup when the cache cannot answer.
package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/medic/supportbot/internal/intent"
	"github.com/medic/supportbot/internal/lookup"
	"github.com/medic/supportbot/internal/models"
	"github.com/medic/supportbot/internal/profile"
)

type Status string

const (
	StatusCached    Status = "cached"
	StatusFetched   Status = "fetched"
	StatusMissingID Status = "missing_id"
	StatusNotFound  Status = "not_found"
	StatusFailed    Status = "failed"
)

const (
	placeholder = "—"
	defaultName = "Socio"

	msgMissingID   = `Necesito tu DNI. Escribí: "mi dni es 30.123.456" (o sin puntos).`
	msgNotFound    = "No pude obtener datos para el DNI %s. Probá más tarde."
	msgLookupError = "Tuvimos un problema consultando tu información. Intentá más tarde."
)

// Result carries the profile to keep and the reply to show. Profile equals
// the input profile unless Status is StatusFetched.
type Result struct {
	Profile models.Profile
	Message string
	Status  Status
	Err     error
}

// Persist reports whether Profile differs from what the caller passed in.
func (r Result) Persist() bool {
	return r.Status == StatusFetched
}

// Enrich never mutates p. The only I/O is client.LookupByNationalID; its
// latency bound belongs to ctx and the client.
func Enrich(ctx context.Context, feature intent.Intent, p models.Profile, client lookup.Client) Result {
	if Sufficient(feature, p) {
		return Result{Profile: p, Message: Reply(feature, p), Status: StatusCached}
	}
	if p.NationalID == "" {
		return Result{Profile: p, Message: msgMissingID, Status: StatusMissingID}
	}

	fetched, err := client.LookupByNationalID(ctx, p.NationalID)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return Result{Profile: p, Message: fmt.Sprintf(msgNotFound, p.NationalID), Status: StatusNotFound, Err: err}
	case err != nil:
		return Result{Profile: p, Message: msgLookupError, Status: StatusFailed, Err: err}
	}

	merged := profile.Merge(p, fetched)
	return Result{Profile: merged, Message: Reply(feature, merged), Status: StatusFetched}
}

// Sufficient reports whether the cache alone can answer feature.
func Sufficient(feature intent.Intent, p models.Profile) bool {
	switch feature {
	case intent.MyPlan:
		return p.PlanName != "" || p.ContractNumber != "" || p.IsActive != nil
	case intent.MyStatus:
		return p.IsActive != nil
	case intent.MyCard:
		return p.ContractNumber != "" || p.IsActive != nil
	}
	return false
}

// Reply renders the fixed-shape answer for feature. Missing fields show as
// a dash.
func Reply(feature intent.Intent, p models.Profile) string {
	name := p.FullName
	if name == "" {
		name = defaultName
	}
	switch feature {
	case intent.MyPlan:
		return fmt.Sprintf("👤 %s\nPlan: %s\nContrato: %s\nCobertura: %s",
			name, orDash(p.PlanName), orDash(p.ContractNumber), flag(p.IsActive, "✅ VIGENTE", "❌ NO VIGENTE"))
	case intent.MyStatus:
		return fmt.Sprintf("🧾 Estado de cobertura para %s:\n%s",
			name, flag(p.IsActive, "✅ ACTIVA y al día", "❌ SUSPENDIDA / INACTIVA"))
	case intent.MyCard:
		return fmt.Sprintf("📇 Credencial digital:\n• Nº de contrato: %s\n• Titular: %s\n• Estado: %s\nPodés verla en la pestaña “Credencial”.",
			orDash(p.ContractNumber), name, flag(p.IsActive, "✅ Vigente", "❌ No vigente"))
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func flag(v *bool, yes, no string) string {
	switch {
	case v == nil:
		return placeholder
	case *v:
		return yes
	default:
		return no
	}
}
