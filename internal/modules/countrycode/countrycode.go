// README: Static country name/alias to advisory code table.
package countrycode

import "strings"

type entry struct {
	code    string
	aliases []string
}

// Entries are checked in order; the first alias match wins.
var table = []entry{
	{"AF", []string{"Afghanistan"}},
	{"AL", []string{"Albania"}},
	{"DZ", []string{"Algeria"}},
	{"AR", []string{"Argentina"}},
	{"AM", []string{"Armenia"}},
	{"AU", []string{"Australia"}},
	{"AT", []string{"Austria", "Österreich"}},
	{"AZ", []string{"Azerbaijan"}},
	{"BH", []string{"Bahrain"}},
	{"BD", []string{"Bangladesh"}},
	{"BE", []string{"Belgium", "België", "Belgique"}},
	{"BO", []string{"Bolivia"}},
	{"BA", []string{"Bosnia and Herzegovina", "Bosnia"}},
	{"BR", []string{"Brazil", "Brasil"}},
	{"BG", []string{"Bulgaria"}},
	{"KH", []string{"Cambodia"}},
	{"CA", []string{"Canada"}},
	{"CL", []string{"Chile"}},
	{"CN", []string{"China", "People's Republic of China", "中国"}},
	{"CO", []string{"Colombia"}},
	{"CR", []string{"Costa Rica"}},
	{"HR", []string{"Croatia", "Hrvatska"}},
	{"CU", []string{"Cuba"}},
	{"CY", []string{"Cyprus"}},
	{"CZ", []string{"Czech Republic", "Czechia", "Česko"}},
	{"DK", []string{"Denmark", "Danmark"}},
	{"DO", []string{"Dominican Republic"}},
	{"EC", []string{"Ecuador"}},
	{"EG", []string{"Egypt"}},
	{"EE", []string{"Estonia"}},
	{"ET", []string{"Ethiopia"}},
	{"FJ", []string{"Fiji"}},
	{"FI", []string{"Finland", "Suomi"}},
	{"FR", []string{"France"}},
	{"GE", []string{"Georgia"}},
	{"DE", []string{"Germany", "Deutschland"}},
	{"GH", []string{"Ghana"}},
	{"GR", []string{"Greece", "Ελλάς", "Hellas"}},
	{"GT", []string{"Guatemala"}},
	{"HK", []string{"Hong Kong"}},
	{"HU", []string{"Hungary", "Magyarország"}},
	{"IS", []string{"Iceland", "Ísland"}},
	{"IN", []string{"India", "Bharat"}},
	{"ID", []string{"Indonesia"}},
	{"IR", []string{"Iran"}},
	{"IQ", []string{"Iraq"}},
	{"IE", []string{"Ireland", "Éire"}},
	{"IL", []string{"Israel"}},
	{"IT", []string{"Italy", "Italia"}},
	{"JM", []string{"Jamaica"}},
	{"JP", []string{"Japan", "日本"}},
	{"JO", []string{"Jordan"}},
	{"KZ", []string{"Kazakhstan"}},
	{"KE", []string{"Kenya"}},
	{"KR", []string{"South Korea", "Korea", "Republic of Korea", "대한민국"}},
	{"KP", []string{"North Korea"}},
	{"KW", []string{"Kuwait"}},
	{"LA", []string{"Laos"}},
	{"LV", []string{"Latvia"}},
	{"LB", []string{"Lebanon"}},
	{"LT", []string{"Lithuania"}},
	{"LU", []string{"Luxembourg"}},
	{"MO", []string{"Macau", "Macao"}},
	{"MY", []string{"Malaysia"}},
	{"MV", []string{"Maldives"}},
	{"MT", []string{"Malta"}},
	{"MX", []string{"Mexico", "México"}},
	{"MN", []string{"Mongolia"}},
	{"ME", []string{"Montenegro"}},
	{"MA", []string{"Morocco"}},
	{"MM", []string{"Myanmar", "Burma"}},
	{"NP", []string{"Nepal"}},
	{"NL", []string{"Netherlands", "The Netherlands", "Holland", "Nederland"}},
	{"NZ", []string{"New Zealand", "Aotearoa"}},
	{"NG", []string{"Nigeria"}},
	{"NO", []string{"Norway", "Norge"}},
	{"OM", []string{"Oman"}},
	{"PK", []string{"Pakistan"}},
	{"PA", []string{"Panama"}},
	{"PG", []string{"Papua New Guinea"}},
	{"PE", []string{"Peru", "Perú"}},
	{"PH", []string{"Philippines"}},
	{"PL", []string{"Poland", "Polska"}},
	{"PT", []string{"Portugal"}},
	{"QA", []string{"Qatar"}},
	{"RO", []string{"Romania"}},
	{"RU", []string{"Russia", "Russian Federation"}},
	{"SA", []string{"Saudi Arabia"}},
	{"RS", []string{"Serbia"}},
	{"SG", []string{"Singapore"}},
	{"SK", []string{"Slovakia"}},
	{"SI", []string{"Slovenia"}},
	{"ZA", []string{"South Africa"}},
	{"ES", []string{"Spain", "España"}},
	{"LK", []string{"Sri Lanka"}},
	{"SE", []string{"Sweden", "Sverige"}},
	{"CH", []string{"Switzerland", "Schweiz", "Suisse", "Svizzera"}},
	{"TW", []string{"Taiwan", "臺灣", "台灣"}},
	{"TZ", []string{"Tanzania"}},
	{"TH", []string{"Thailand"}},
	{"TN", []string{"Tunisia"}},
	{"TR", []string{"Turkey", "Türkiye"}},
	{"UA", []string{"Ukraine"}},
	{"AE", []string{"United Arab Emirates", "UAE"}},
	{"GB", []string{"United Kingdom", "UK", "Great Britain", "Britain", "England", "Scotland", "Wales"}},
	{"US", []string{"United States", "United States of America", "USA", "America"}},
	{"UY", []string{"Uruguay"}},
	{"UZ", []string{"Uzbekistan"}},
	{"VU", []string{"Vanuatu"}},
	{"VE", []string{"Venezuela"}},
	{"VN", []string{"Vietnam", "Viet Nam"}},
	{"ZM", []string{"Zambia"}},
	{"ZW", []string{"Zimbabwe"}},
}

// Lookup maps a country name, alias or code to its advisory code.
// Unknown input returns ("", false).
func Lookup(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	for _, e := range table {
		for _, a := range e.aliases {
			if strings.EqualFold(name, a) {
				return e.code, true
			}
		}
	}
	for _, e := range table {
		if strings.EqualFold(name, e.code) {
			return e.code, true
		}
	}
	return "", false
}
