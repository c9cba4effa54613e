package template

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studiowebux/restcli-core/internal/model"
)

// generate produces a fresh pseudo-random value for a faker KIND token,
// matching case-insensitively against the closed enumeration in spec §4.2.
// Each call is independent; no state is shared across invocations.
func generate(kind string) (string, error) {
	switch strings.ToLower(kind) {
	case "firstname", "first_name":
		return pick(firstNames), nil
	case "lastname", "last_name":
		return pick(lastNames), nil
	case "fullname", "full_name", "name":
		return pick(firstNames) + " " + pick(lastNames), nil
	case "title":
		return pick(titles), nil
	case "suffix":
		return pick(suffixes), nil
	case "email":
		return strings.ToLower(pick(firstNames)) + "." + strings.ToLower(pick(lastNames)) + "@" + pick(domains), nil
	case "username":
		return strings.ToLower(pick(firstNames)) + fmt.Sprint(randInt(10, 99)), nil
	case "password":
		return randomString(randInt(8, 16), passwordAlphabet), nil
	case "domain":
		return pick(domains), nil
	case "ipv4":
		return fmt.Sprintf("%d.%d.%d.%d", randInt(1, 254), randInt(0, 255), randInt(0, 255), randInt(1, 254)), nil
	case "ipv6":
		return randIPv6(), nil
	case "useragent", "user_agent":
		return pick(userAgents), nil
	case "url":
		return "https://" + pick(domains) + "/" + strings.ToLower(pick(lorem)), nil
	case "phone", "phonenumber", "phone_number":
		return fmt.Sprintf("+1-%03d-%03d-%04d", randInt(200, 999), randInt(200, 999), randInt(0, 9999)), nil
	case "cellnumber", "cell_number":
		return fmt.Sprintf("(%03d) %03d-%04d", randInt(200, 999), randInt(200, 999), randInt(0, 9999)), nil
	case "street", "streetname", "street_name":
		return fmt.Sprintf("%d %s St", randInt(1, 9999), pick(lastNames)), nil
	case "city", "cityname", "city_name":
		return pick(cities), nil
	case "state", "statename", "state_name":
		return pick(states), nil
	case "stateabbr", "state_abbr":
		return pick(stateAbbrs), nil
	case "zipcode", "zip_code", "zip":
		return fmt.Sprintf("%05d", randInt(10000, 99999)), nil
	case "country", "countryname", "country_name":
		return pick(countries), nil
	case "countrycode", "country_code":
		return pick(countryCodes), nil
	case "latitude", "lat":
		return fmt.Sprintf("%.6f", randFloat(-90, 90)), nil
	case "longitude", "lon", "lng":
		return fmt.Sprintf("%.6f", randFloat(-180, 180)), nil
	case "company", "companyname", "company_name":
		return pick(lastNames) + " " + pick(companySuffixes), nil
	case "companysuffix", "company_suffix":
		return pick(companySuffixes), nil
	case "industry":
		return pick(industries), nil
	case "profession":
		return pick(professions), nil
	case "word":
		return pick(lorem), nil
	case "words":
		return strings.Join(pickN(lorem, randInt(3, 5)), " "), nil
	case "sentence":
		return sentence(randInt(3, 10)), nil
	case "sentences":
		return joinSentences(randInt(2, 4)), nil
	case "paragraph":
		return paragraph(randInt(3, 7)), nil
	case "paragraphs":
		return joinParagraphs(randInt(2, 4)), nil
	case "number", "int", "integer":
		return fmt.Sprint(randInt(1, 1000)), nil
	case "float", "decimal":
		return fmt.Sprintf("%.2f", randFloat(1.0, 1000.0)), nil
	case "digit":
		return fmt.Sprint(randInt(0, 9)), nil
	case "boolean", "bool":
		return fmt.Sprint(rand.Intn(2) == 1), nil
	case "date":
		return randomTime().Format("2006-01-02"), nil
	case "datetime", "timestamp":
		return randomTime().Format("2006-01-02 15:04:05"), nil
	case "time":
		return fmt.Sprintf("%02d:%02d:%02d", randInt(0, 23), randInt(0, 59), randInt(0, 59)), nil
	case "uuid", "guid":
		return uuid.NewString(), nil
	case "color":
		return pick(colors), nil
	case "hexcolor", "hex_color":
		return fmt.Sprintf("#%06x", rand.Intn(0xFFFFFF)), nil
	default:
		return "", &model.UnknownFakerKindError{Kind: kind}
	}
}

func randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rand.Intn(hi-lo+1)
}

func randFloat(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func pick(items []string) string {
	return items[rand.Intn(len(items))]
}

func pickN(items []string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = pick(items)
	}
	return out
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

func randomString(n int, alphabet string) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.Intn(len(alphabet))]
	}
	return string(b)
}

func randIPv6() string {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%x", rand.Intn(0x10000))
	}
	return strings.Join(groups, ":")
}

func randomTime() time.Time {
	now := time.Now().UTC()
	days := randInt(-3650, 0)
	return now.AddDate(0, 0, days)
}

func sentence(words int) string {
	parts := pickN(lorem, words)
	parts[0] = strings.Title(parts[0])
	return strings.Join(parts, " ") + "."
}

func joinSentences(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = sentence(randInt(3, 10))
	}
	return strings.Join(out, " ")
}

func paragraph(sentences int) string {
	out := make([]string, sentences)
	for i := range out {
		out[i] = sentence(randInt(3, 10))
	}
	return strings.Join(out, " ")
}

func joinParagraphs(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = paragraph(randInt(3, 7))
	}
	return strings.Join(out, "\n\n")
}

var (
	firstNames = []string{"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas"}
	titles     = []string{"Mr.", "Mrs.", "Ms.", "Dr.", "Prof."}
	suffixes   = []string{"Jr.", "Sr.", "II", "III", "IV"}
	domains    = []string{"example.com", "test.org", "mail.net", "demo.io", "sample.dev"}
	userAgents = []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/118.0",
	}
	cities          = []string{"Springfield", "Riverside", "Franklin", "Greenville", "Fairview", "Salem", "Madison", "Georgetown"}
	states          = []string{"California", "Texas", "New York", "Florida", "Illinois", "Ohio", "Georgia", "Washington"}
	stateAbbrs      = []string{"CA", "TX", "NY", "FL", "IL", "OH", "GA", "WA"}
	countries       = []string{"United States", "Canada", "United Kingdom", "Germany", "France", "Japan", "Australia", "Brazil"}
	countryCodes    = []string{"US", "CA", "GB", "DE", "FR", "JP", "AU", "BR"}
	companySuffixes = []string{"Inc", "LLC", "Group", "Partners", "Holdings", "Co"}
	industries      = []string{"Technology", "Healthcare", "Finance", "Retail", "Manufacturing", "Education"}
	professions     = []string{"Engineer", "Designer", "Analyst", "Manager", "Consultant", "Developer"}
	lorem           = []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing", "elit", "sed", "do", "eiusmod", "tempor"}
	colors          = []string{"red", "blue", "green", "yellow", "purple", "orange", "pink", "brown", "black", "white"}
)
