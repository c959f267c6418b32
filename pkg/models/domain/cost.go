package domain

// Well-known classification values. The breakdown maps are open: any string is a
// legal bucket, these are only the defaults that always appear in a report.
const (
	ScopeTask       = "task"
	ScopeCapability = "capability"
	ScopeProduct    = "product"
	ScopeShared     = "shared"

	CategoryBuild    = "build"
	CategoryRun      = "run"
	CategoryMaintain = "maintain"
	CategoryScale    = "scale"
	CategoryOverhead = "overhead"

	CostTypeLabor   = "labor"
	CostTypeInfra   = "infra"
	CostTypeLicense = "license"
	CostTypeVendor  = "vendor"
	CostTypeOther   = "other"

	RecurrenceOneTime   = "one-time"
	RecurrenceMonthly   = "monthly"
	RecurrenceQuarterly = "quarterly"
	RecurrenceAnnual    = "annual"
)

// Cost is a single cost record attached to a product. Records are owned by the
// cost store; the TCO engine only reads them.
type Cost struct {
	ID          string
	ProductID   string
	Name        string
	Scope       string // task | capability | product | shared (free text)
	Category    string // build | run | maintain | scale | overhead (free text)
	CostType    string // labor | infra | license | vendor | other (free text)
	Recurrence  string // one-time | monthly | quarterly | annual (free text)
	Amount      float64
	Currency    string // not converted, summed as-is
	Description string

	// AmortizationMonths spreads a one-time cost over N months before the
	// window re-scale. Ignored for recurring costs.
	AmortizationMonths *int
}
