package catalog

// Category is one entry of the category picker.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Group string `json:"group" yaml:"group"`
}

const (
	groupAgro    = "1. Sektor Agrobisnis & SDA"
	groupBisnis  = "2. Manajemen & Bisnis"
	groupDigital = "3. Digital & Kreatif"
	groupFinance = "4. Keuangan & Ekonomi"
	groupDesa    = "5. Program & Desa"
	groupOther   = "6. Industri Lainnya"
)

var builtin = []Category{
	{"Pertanian", "#c1ff72", groupAgro},
	{"Perikanan", "#c1ff72", groupAgro},
	{"Peternakan", "#c1ff72", groupAgro},
	{"Perkebunan", "#c1ff72", groupAgro},
	{"Tanaman herbal", "#c1ff72", groupAgro},
	{"Tanaman Hias", "#c1ff72", groupAgro},
	{"Marketing", "#facc15", groupBisnis},
	{"Legalitas", "#facc15", groupBisnis},
	{"Profil Bisnis", "#facc15", groupBisnis},
	{"Manajemen Operasional", "#facc15", groupBisnis},
	{"Layanan Customer", "#facc15", groupBisnis},
	{"Komunikasi", "#facc15", groupBisnis},
	{"Pola Pikir", "#facc15", groupBisnis},
	{"Ekspor", "#facc15", groupBisnis},
	{"Layanan Digital", "#e4bed2", groupDigital},
	{"Content Creator", "#e4bed2", groupDigital},
	{"Fotografi", "#e4bed2", groupDigital},
	{"Ekosistem", "#e4bed2", groupDigital},
	{"Ultra Mikro", "#ff751f", groupFinance},
	{"Pembiayaan", "#ff751f", groupFinance},
	{"Inklusi Keuangan", "#ff751f", groupFinance},
	{"Kopdes", "#ff751f", groupFinance},
	{"BRIncubator", "#fefefe", groupDesa},
	{"Desa BRIlian", "#fefefe", groupDesa},
	{"Reguler", "#fefefe", groupDesa},
	{"Analisis Potensi Desa", "#fefefe", groupDesa},
	{"FnB", "#ffde59", groupOther},
	{"Fashion", "#ffde59", groupOther},
	{"Pariwisata", "#ffde59", groupOther},
}
