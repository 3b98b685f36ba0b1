package constant

import "fmt"

// FieldType declares how a questionnaire answer is extracted and reduced.
type FieldType string

const (
	FieldTypeFloat FieldType = "float"
	FieldTypeText  FieldType = "text"
	FieldTypeList  FieldType = "list"
)

// CompanyPlaceholder is used when no company name could be resolved from the
// uploaded documents.
const CompanyPlaceholder = "this enterprise"

// CompanyNameQuery is the fixed retrieval query used to locate a passage that
// mentions the reporting company.
const CompanyNameQuery = "What is the name of the company or enterprise mentioned in this document?"

// MaxCompanyNameLength bounds accepted model output for the company name.
const MaxCompanyNameLength = 50

// FieldSpec defines one questionnaire question. Question templates may
// interpolate the detected company name via %s.
type FieldSpec struct {
	Key      string
	Question string
	Type     FieldType
	Options  []string // closed option set, list type only
}

// RenderQuestion resolves the question template against a company name.
func (f FieldSpec) RenderQuestion(companyName string) string {
	return fmt.Sprintf(f.Question, companyName)
}

// Fields is the static ESG questionnaire, in extraction order.
var Fields = []FieldSpec{
	{
		Key:      "policy_options",
		Question: "Does %s have a formal policy on the following environmental topics? Options: Energy consumption and greenhouse gases (GHG), Water resources, Air pollution (non-GHG), Materials, chemicals and waste, Biodiversity, Product end-of-life (e.g. recycling). Output the selected options as a list.",
		Type:     FieldTypeList,
		Options: []string{
			"Energy consumption and greenhouse gases (GHG)",
			"Water resources",
			"Air pollution (non-GHG)",
			"Materials, chemicals and waste",
			"Biodiversity",
			"Product end-of-life (e.g. recycling)",
		},
	},
	{
		Key:      "quantitative_target",
		Question: "Does the policy of %s include quantitative targets? Output the target value and year, e.g. reduce emissions 20%% by 2030.",
		Type:     FieldTypeText,
	},
	{
		Key:      "energy_measures",
		Question: "What measures has %s taken to reduce energy consumption and greenhouse gas emissions?",
		Type:     FieldTypeText,
	},
	{
		Key:      "waste_measures",
		Question: "What measures has %s taken in waste and chemicals management?",
		Type:     FieldTypeText,
	},
	{
		Key:      "ghg_practice",
		Question: "Regarding GHG monitoring and reporting practice at %s, which of the following apply? Options: Emissions accounting follows ISO 14064-1 or the GHG Protocol, Emissions data verified by a third party (ISAE 3410 or similar), Report publicly disclosed. Output the selected options as a list.",
		Type:     FieldTypeList,
		Options: []string{
			"Emissions accounting follows ISO 14064-1 or the GHG Protocol",
			"Emissions data verified by a third party (ISAE 3410 or similar)",
			"Report publicly disclosed",
		},
	},
	{
		Key:      "carbon_target",
		Question: "Regarding carbon reduction targets at %s, which of the following apply? Options: Publicly committed to a science-based target (SBTi), Has an SBTi-approved reduction target, Has an annual review mechanism for target progress. Output the selected options as a list.",
		Type:     FieldTypeList,
		Options: []string{
			"Publicly committed to a science-based target (SBTi)",
			"Has an SBTi-approved reduction target",
			"Has an annual review mechanism for target progress",
		},
	},
	{
		Key:      "scope1",
		Question: "What are the Scope 1 (direct) emissions of %s, in tonnes of CO2 equivalent?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "scope2",
		Question: "What are the Scope 2 (energy indirect) emissions of %s, in tonnes of CO2 equivalent?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "scope3",
		Question: "What are the Scope 3 (other indirect, upstream and downstream) emissions of %s, in tonnes of CO2 equivalent?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "energy_total",
		Question: "What is the total energy consumption of %s, in kWh?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "renewable_ratio",
		Question: "What is the renewable energy share of %s, in %%?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "hazardous_waste",
		Question: "What is the total hazardous waste of %s, in kg?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "nonhazardous_waste",
		Question: "What is the total non-hazardous waste of %s, in kg?",
		Type:     FieldTypeFloat,
	},
	{
		Key:      "recycled_waste",
		Question: "What is the total recycled or reused waste of %s, in kg?",
		Type:     FieldTypeFloat,
	},
}

// KPIFieldKeys is the closed set of numeric KPI fields eligible for the
// vision fallback extractor.
var KPIFieldKeys = []string{
	"scope1", "scope2", "scope3",
	"energy_total", "renewable_ratio",
	"hazardous_waste", "nonhazardous_waste", "recycled_waste",
}

// ModuleSummaryKeys are the fields eligible for module-level RAG summaries.
var ModuleSummaryKeys = []string{"quantitative_target", "energy_measures", "waste_measures"}

// FieldByKey returns the field definition for a key, or false when unknown.
func FieldByKey(key string) (FieldSpec, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// IsKPIField reports whether key belongs to the vision-eligible KPI set.
func IsKPIField(key string) bool {
	for _, k := range KPIFieldKeys {
		if k == key {
			return true
		}
	}
	return false
}
