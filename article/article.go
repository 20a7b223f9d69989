// Package article defines the canonical record produced by every news source
// adapter and later filled in by the enrichment pipeline.
package article

// Site identifiers for the HTML adapters. The WP-REST and RSS adapters use the
// host name of the configured domain instead.
const (
	SiteDetik       = "detik"
	SiteKompas      = "kompas"
	SiteBeritaSatu  = "beritasatu"
	SitePanturaPost = "panturapost"
	SiteINews       = "inews"
	SiteAntara      = "antara"
	SiteTVOne       = "tvone"
	SitePolice      = "police"
	SiteSuaraJelata = "suarajelata"
	SiteEmsatuNews  = "emsatunews"
	SiteArahPantura = "arahpantura"
)

// Sentinels written by the enrichment pipeline.
const (
	// SummaryEmpty replaces the summary when content is too short to send to
	// the summarizer.
	SummaryEmpty = "Teks kosong"
	// SummaryTooShort is what the summarizer itself answers for short input.
	SummaryTooShort = "Teks terlalu pendek atau kosong"
	// SummaryFailed is used when the remote summarization call fails.
	SummaryFailed = "Ringkasan gagal"
	// CategoryEmpty is the category assigned to articles without usable
	// content (R,S,T,U: Jasa Lainnya).
	CategoryEmpty = "R"
	// CategoryError is used when the remote classification call fails.
	CategoryError = "ERROR"
)

// Article is a single news article as scraped from one source. Tanggal is
// DD/MM/YYYY when the source's date could be parsed, otherwise the raw text
// from the page. Summary and Kategori stay empty until enrichment.
type Article struct {
	Site     string `json:"site"`
	Tanggal  string `json:"tanggal"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Link     string `json:"link"`
	Summary  string `json:"summary,omitempty"`
	Kategori string `json:"kategori,omitempty"`
}

// Enriched reports whether the enrichment pipeline has processed the article.
func (a *Article) Enriched() bool {
	return a.Summary != "" || a.Kategori != ""
}
