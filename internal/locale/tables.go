package locale

// Static lookup tables for the numeric and temporal normalizers. New
// locales are added here, not in the parsing logic.

// arabicDigits maps Arabic-Indic digit glyphs 1:1 onto Latin digits.
var arabicDigits = map[rune]rune{
	'٠': '0', '١': '1', '٢': '2', '٣': '3', '٤': '4',
	'٥': '5', '٦': '6', '٧': '7', '٨': '8', '٩': '9',
}

// magnitudeWords maps scaling factors to the whole words that express
// them. Latin single-letter suffixes (k/m/b) are handled separately
// because they attach directly to the numeric token.
var magnitudeWords = []struct {
	Factor float64
	Words  []string
}{
	{1e3, []string{"ألف", "آلاف"}},
	{1e6, []string{"مليون", "ملايين"}},
	{1e9, []string{"مليار", "مليارات"}},
}

// suffixFactors maps the Latin magnitude suffixes to their factors.
var suffixFactors = map[string]float64{
	"k": 1e3,
	"m": 1e6,
	"b": 1e9,
}

// RelativeUnit is a canonical unit of a relative time expression.
type RelativeUnit string

const (
	UnitHour   RelativeUnit = "hour"
	UnitMinute RelativeUnit = "minute"
	UnitDay    RelativeUnit = "day"
	UnitYear   RelativeUnit = "year"
)

// relativeUnits maps canonical units to their accepted surface forms in
// both locales. Forms are matched case-insensitively; longer forms must
// come first so the alternation prefers them.
var relativeUnits = []struct {
	Unit  RelativeUnit
	Forms []string
}{
	{UnitHour, []string{"hours", "hour", "hrs", "hr", "h", "ساعات", "ساعة"}},
	{UnitMinute, []string{"minutes", "minute", "mins", "min", "m", "دقائق", "دقيقة"}},
	{UnitDay, []string{"days", "day", "d", "أيام", "يوم"}},
	{UnitYear, []string{"years", "year", "yrs", "yr", "y", "سنوات", "سنة"}},
}

// monthNames is the fixed 12-entry month table. Each entry lists the
// accepted surface forms for that month, including the hamza-less
// Arabic spelling variants that appear in the wild.
var monthNames = [12][]string{
	{"يناير", "january", "jan"},
	{"فبراير", "february", "feb"},
	{"مارس", "march", "mar"},
	{"أبريل", "ابريل", "إبريل", "april", "apr"},
	{"مايو", "may"},
	{"يونيو", "يونية", "june", "jun"},
	{"يوليو", "يولية", "july", "jul"},
	{"أغسطس", "اغسطس", "august", "aug"},
	{"سبتمبر", "september", "sep"},
	{"أكتوبر", "اكتوبر", "october", "oct"},
	{"نوفمبر", "november", "nov"},
	{"ديسمبر", "december", "dec"},
}

// pmMarkers are the period markers that select the second half of the
// day in the absolute date form. Anything else (or no marker) means AM.
var pmMarkers = []string{"pm", "م", "مساء", "مساءً"}

// atWords join the day/month part to the clock part in the absolute
// date form.
var atWords = []string{"at", "في", "الساعة"}
