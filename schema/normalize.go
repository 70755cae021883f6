package schema

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lfarias/leadstats/models"
)

// agreementCodes maps lower-cased agreement names to their fixed acronym
// codes. Anything outside the table keeps its lower-cased form.
var agreementCodes = map[string]string{
	"prefeitura de recife":          "PREF REC",
	"prefeitura de curitiba":        "PREF CUR",
	"prefeitura de maringá":         "PREF MAR",
	"prefeitura de goiânia":         "PREF GOI",
	"prefeitura de belo horizonte":  "PREF BH",
	"governo de rondônia":           "GOV RO",
	"governo do paraná":             "GOV PR",
	"prefeitura de são paulo":       "PREF SP",
	"governo de são paulo":          "GOV SP",
	"prefeitura do rio de janeiro":  "PREF RJ",
	"governo do rio de janeiro":     "GOV RJ",
	"prefeitura de salvador":        "PREF SSA",
	"governo da bahia":              "GOV BA",
	"governo de alagoas":            "GOV AL",
	"governo do amazonas":           "GOV AM",
	"governo do maranhão":           "GOV MA",
	"governo de goiás":              "GOV GO",
	"governo do ceará":              "GOV CE",
	"governo de pernambuco":         "GOV PE",
	"governo de mato grosso do sul": "GOV MS",
	"governo de mato grosso":        "GOV MT",
	"governo do piauí":              "GOV PI",
	"prefeitura de joão pessoa":     "PREF JP",
}

// AgreementCode derives the canonical acronym for a raw agreement string.
// Total: missing values yield "", unknown names yield their lower-cased form.
func AgreementCode(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if code, ok := agreementCodes[key]; ok {
		return code
	}
	return key
}

// OtherReasons is the bucket for every loss reason outside the whitelist.
const OtherReasons = "Other"

var mainLossReasons = map[string]struct{}{
	"Sem Interação":                    {},
	"Telefone Inválido":                {},
	"Sem interesse":                    {},
	"Sem oportunidade":                 {},
	`Lead respondeu "NÃO" ao disparo`:  {},
	"Vínculo inadequado":               {},
	"Desistência do Cliente":           {},
	"Sem interação; Sem interesse":     {},
	"Não atende":                       {},
	"Não receber mensagens - LGPD":     {},
	"Margem Insuficiente":              {},
}

// GroupLossReason keeps whitelisted reasons and folds the long tail
// (including empty cells) into OtherReasons.
func GroupLossReason(raw string) string {
	if _, ok := mainLossReasons[raw]; ok {
		return raw
	}
	return OtherReasons
}

// channelAliases rewrites legacy origin labels to the canonical channels.
var channelAliases = map[string]string{
	"HYPERFLOW":              "RCS",
	"Whatsapp Grow":          "RCS",
	"Duplicação Negócio App": "App",
}

func NormalizeChannel(raw string) string {
	if canonical, ok := channelAliases[raw]; ok {
		return canonical
	}
	return raw
}

// teamFragments rewrites the free-form team column of the extended export by
// case-insensitive substring match. Non-matching values pass through.
var teamFragments = []struct {
	fragment  string
	canonical string
}{
	{"recife", "Equipe Recife"},
	{"curitiba", "Equipe Curitiba"},
	{"digital", "Equipe Digital"},
}

func NormalizeTeam(raw string) string {
	lower := strings.ToLower(raw)
	for _, t := range teamFragments {
		if strings.Contains(lower, t.fragment) {
			return t.canonical
		}
	}
	return raw
}

// stageLabels maps the source system's stage labels to the canonical
// vocabulary. Unknown labels are preserved as-is.
var stageLabels = map[string]models.Stage{
	"LEAD":        models.StageLead,
	"NEGOCIAÇÃO":  models.StageNegotiation,
	"CONTRATAÇÃO": models.StageContracting,
	"PAGO":        models.StagePaid,
	"PERDA":       models.StageLost,
}

func CanonicalStage(raw string) models.Stage {
	if s, ok := stageLabels[strings.TrimSpace(raw)]; ok {
		return s
	}
	return models.Stage(strings.TrimSpace(raw))
}

// channelRates is the fixed per-message price table. Channels outside it have
// no rate: spend stays NaN instead of silently becoming free.
var channelRates = map[string]float64{
	"SMS": 0.048,
	"RCS": 0.105,
}

func UnitPrice(channel string) float64 {
	if rate, ok := channelRates[channel]; ok {
		return rate
	}
	return math.NaN()
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
	"2006-01-02",
}

// parseTimestamp parses a creation timestamp, zero on failure.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// dayOf truncates to a date-only value so day equality works across tables.
func dayOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var dayFirstLayouts = []string{"02/01/2006", "2/1/2006", "02-01-2006", "02/01/2006 15:04"}

// parseDayFirst parses the spend ledger's day-first dates, zero on failure.
func parseDayFirst(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return dayOf(t)
		}
	}
	return time.Time{}
}

// parseNumber parses a numeric cell, NaN on failure. Handles both "1234.56"
// and the pt-BR "1.234,56" rendering.
func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "R$"))
	if raw == "" {
		return math.NaN()
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	swapped := strings.NewReplacer(".", "", ",", ".").Replace(raw)
	if v, err := strconv.ParseFloat(swapped, 64); err == nil {
		return v
	}
	return math.NaN()
}
