// Package changelog derives human-readable audit notes from entity field
// changes. Services feed it the submitted fields and the prior record; it
// owns the comparison rules and the note wording, and persists the derived
// notes best-effort through the Recorder.
package changelog

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Display fallbacks used when a referenced row cannot be resolved
const (
	Unassigned   = "Sin asignar"
	UnknownStage = "Desconocido"
	NoStatus     = "Sin estado"
)

// Per-entity creation messages
const (
	ContactCreated = "Contacto creado"
	CompanyCreated = "Compañía creada"
	LeadCreated    = "Lead creado"
)

// Field display labels interpolated into note text
const (
	LabelFirstName = "Nombre"
	LabelLastName  = "Apellido"
	LabelEmail     = "Correo"
	LabelPhone     = "Teléfono"
	LabelPosition  = "Cargo"
	LabelCompany   = "Compañía"
	LabelName      = "Nombre"
	LabelBudget    = "Presupuesto"
	LabelStatus    = "Estado"
	LabelAssignee  = "Usuario Asignado"
	LabelCurrency  = "Moneda"
	LabelContact   = "Contacto"
	LabelWebsite   = "Web"
	LabelIndustry  = "Industria"
	LabelAddress   = "Dirección"
)

// FieldSet renders the generic field-assignment entry
func FieldSet(label, value string) string {
	return fmt.Sprintf("El valor del campo «%s» se establece en «%s»", label, value)
}

// StageChange renders the stage-transition entry emitted when a lead moves
// to a pipeline stage, replacing the generic form for the status field.
func StageChange(newName, oldName string) string {
	return fmt.Sprintf("Nuevo estatus: %s de %s", newName, oldName)
}

// LinkedCompany renders the entry emitted when linking a contact implicitly
// associates the lead with the contact's company.
func LinkedCompany(companyName string) string {
	return fmt.Sprintf("La compañía asociada es «%s» (vía contacto)", companyName)
}

// TextChanged reports whether a submitted text field differs from the stored
// value. A nil submission means the field is not being set.
func TextChanged(old string, submitted *string) bool {
	if submitted == nil {
		return false
	}
	return old != *submitted
}

// NumberChanged reports whether a submitted numeric field differs from the
// stored value, treating an absent value as zero.
func NumberChanged(old decimal.Decimal, submitted *decimal.Decimal) bool {
	if submitted == nil {
		return false
	}
	return !old.Equal(*submitted)
}

// RefChanged reports whether a submitted relation field differs from the
// stored reference. Null and unset are equivalent on both sides.
func RefChanged(old, submitted *uuid.UUID) bool {
	if old == nil && submitted == nil {
		return false
	}
	if old != nil && submitted != nil {
		return *old != *submitted
	}
	return true
}

// FieldValue is one submitted field with its display label, used for
// creation logging. Fields with an empty display value are skipped.
type FieldValue struct {
	Label   string
	Display string
}

// CreationEntries builds the note entries for a freshly created entity: the
// entity-specific "created" message followed by one field-set entry per
// populated field, in submission order.
func CreationEntries(createdMsg string, fields []FieldValue) []string {
	entries := []string{createdMsg}
	for _, f := range fields {
		if f.Display == "" {
			continue
		}
		entries = append(entries, FieldSet(f.Label, f.Display))
	}
	return entries
}
