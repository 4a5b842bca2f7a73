package catalog

import "github.com/fairroute/intake-cli/internal/model"

func f(v float64) *float64 { return &v }

var provinceOptions = []model.Option{
	{Value: "AB", Label: "Alberta"},
	{Value: "BC", Label: "British Columbia"},
	{Value: "MB", Label: "Manitoba"},
	{Value: "NB", Label: "New Brunswick"},
	{Value: "NL", Label: "Newfoundland and Labrador"},
	{Value: "NS", Label: "Nova Scotia"},
	{Value: "NT", Label: "Northwest Territories"},
	{Value: "NU", Label: "Nunavut"},
	{Value: "ON", Label: "Ontario"},
	{Value: "PE", Label: "Prince Edward Island"},
	{Value: "QC", Label: "Quebec"},
	{Value: "SK", Label: "Saskatchewan"},
	{Value: "YT", Label: "Yukon"},
}

var employmentStatusOptions = []model.Option{
	{Value: "employed", Label: "Employed"},
	{Value: "unemployed", Label: "Unemployed"},
	{Value: "self_employed", Label: "Self-employed"},
	{Value: "gig", Label: "Gig / casual work"},
	{Value: "retired", Label: "Retired"},
	{Value: "student", Label: "Student"},
	{Value: "other", Label: "Other / not listed"},
}

var unemploymentReasonOptions = []model.Option{
	{Value: "layoff", Label: "Laid off / shortage of work"},
	{Value: "end_of_contract", Label: "End of contract"},
	{Value: "quit", Label: "Quit the job"},
	{Value: "fired_for_cause", Label: "Dismissed for cause"},
	{Value: "health", Label: "Health-related"},
	{Value: "family_care", Label: "Caring for a family member"},
	{Value: "school", Label: "Going to school / training"},
	{Value: "other", Label: "Other / not sure"},
}

var languageOptions = []model.Option{
	{Value: "en", Label: "English"},
	{Value: "fr", Label: "French"},
	{Value: "zh", Label: "Chinese"},
	{Value: "other", Label: "Other"},
}

var residencyStatusOptions = []model.Option{
	{Value: "canadian_resident", Label: "Resident of Canada for tax purposes"},
	{Value: "permanent_resident", Label: "Permanent resident"},
	{Value: "temporary_resident", Label: "Temporary resident / worker / student"},
	{Value: "refugee_claimant", Label: "Refugee claimant"},
	{Value: "other", Label: "Other / not sure"},
}

var defaultQuestions = []model.ClarifierQuestion{
	{
		ID:       "province",
		Field:    "province",
		Kind:     model.KindSelect,
		Required: true,
		Prompt:   "In which province or territory do you live?",
		PromptFR: "Dans quelle province ou quel territoire habitez-vous?",
		Options:  provinceOptions,
	},
	{
		ID:       "age",
		Field:    "age",
		Kind:     model.KindNumberInput,
		Required: true,
		Prompt:   "How old are you?",
		PromptFR: "Quel âge avez-vous?",
		Min:      f(16),
		Max:      f(80),
	},
	{
		ID:       "employment_status",
		Field:    "employment_status",
		Kind:     model.KindSelect,
		Required: true,
		Prompt:   "What best describes your work situation right now?",
		PromptFR: "Qu'est-ce qui décrit le mieux votre situation de travail en ce moment?",
		Options:  employmentStatusOptions,
	},
	{
		ID:       "unemployment_reason",
		Field:    "unemployment_reason",
		Kind:     model.KindSelect,
		Required: false,
		Prompt:   "If you are not working, what is the main reason?",
		PromptFR: "Si vous ne travaillez pas, quelle en est la raison principale?",
		Options:  unemploymentReasonOptions,
	},
	{
		ID:       "children_count",
		Field:    "children_count",
		Kind:     model.KindNumberInput,
		Required: true,
		Prompt:   "How many children under 18 live with you most of the time?",
		PromptFR: "Combien d'enfants de moins de 18 ans vivent avec vous la plupart du temps?",
		Min:      f(0),
		Max:      f(10),
	},
	{
		ID:       "youngest_child_age",
		Field:    "youngest_child_age",
		Kind:     model.KindNumberInput,
		Required: false,
		Prompt:   "How old is your youngest child?",
		PromptFR: "Quel âge a votre plus jeune enfant?",
		Min:      f(0),
		Max:      f(17),
	},
	{
		ID:       "is_single_parent",
		Field:    "is_single_parent",
		Kind:     model.KindBoolean,
		Required: false,
		Prompt:   "Are you the only adult primarily caring for the children (a single parent)?",
		PromptFR: "Êtes-vous le seul adulte qui s'occupe principalement des enfants (parent seul)?",
	},
	{
		ID:       "has_disability",
		Field:    "has_disability",
		Kind:     model.KindBoolean,
		Required: false,
		Prompt:   "Do you have a disability that affects how you work or access services?",
		PromptFR: "Avez-vous un handicap qui affecte votre travail ou votre accès aux services?",
	},
	{
		ID:       "needs_accommodation",
		Field:    "needs_accommodation",
		Kind:     model.KindBoolean,
		Required: false,
		Prompt:   "Do you need any specific accommodations when dealing with government (for example, sign language, plain language, mobility support)?",
		PromptFR: "Avez-vous besoin de mesures d'adaptation particulières avec le gouvernement (par exemple, langue des signes, langage clair, aide à la mobilité)?",
	},
	{
		ID:       "preferred_language",
		Field:    "preferred_language",
		Kind:     model.KindSelect,
		Required: false,
		Prompt:   "Which language would you prefer to use with this assistant?",
		PromptFR: "Quelle langue préférez-vous utiliser avec cet assistant?",
		Options:  languageOptions,
	},
	{
		ID:       "insurable_hours_last_52_weeks",
		Field:    "insurable_hours_last_52_weeks",
		Kind:     model.KindFreeformRange,
		Required: false,
		Prompt:   "Roughly how many insurable hours did you work in the last 52 weeks? You can give a range.",
		PromptFR: "Environ combien d'heures assurables avez-vous travaillées au cours des 52 dernières semaines? Vous pouvez donner une fourchette.",
	},
	{
		ID:       "residency_status",
		Field:    "residency_status",
		Kind:     model.KindSelect,
		Required: false,
		Prompt:   "What best describes your residency status for tax purposes?",
		PromptFR: "Qu'est-ce qui décrit le mieux votre statut de résidence aux fins de l'impôt?",
		Options:  residencyStatusOptions,
	},
}

// defaultTriggers mirror the follow-ups the parse service actually emits.
// Phrases are inclusive on purpose: a redundant question shown twice is
// acceptable, a hidden new question is not.
var defaultTriggers = []Trigger{
	{Field: "insurable_hours_last_52_weeks", Phrases: []string{"insurable hours"}},
	{Field: "province", Phrases: []string{"province or territory"}},
	{Field: "children_count", Phrases: []string{"children under 18"}},
	{Field: "is_single_parent", Phrases: []string{"single parent"}},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(defaultQuestions, defaultTriggers)
	if err != nil {
		// The built-in data is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}
