package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/pevans/berita/article"
)

// Categories maps each sector letter of the Indonesian economic-sector
// classification (KBLI groups used in GDP reporting) to its name.
var Categories = map[string]string{
	"A": "Pertanian, Kehutanan, dan Perikanan",
	"B": "Pertambangan dan Penggalian",
	"C": "Industri Pengolahan",
	"D": "Pengadaan Listrik dan Gas",
	"E": "Pengadaan Air, Pengelolaan Sampah, Limbah, dan Daur Ulang",
	"F": "Konstruksi",
	"G": "Perdagangan Besar dan Eceran; Reparasi Mobil dan Sepeda Motor",
	"H": "Transportasi dan Pergudangan",
	"I": "Penyediaan Akomodasi dan Makan Minum",
	"J": "Informasi dan Komunikasi",
	"K": "Jasa Keuangan dan Asuransi",
	"L": "Real Estate",
	"M": "Jasa Perusahaan",
	"N": "Jasa Perusahaan",
	"O": "Administrasi Pemerintahan, Pertahanan, dan Jaminan Sosial Wajib",
	"P": "Jasa Pendidikan",
	"Q": "Kesehatan dan Kegiatan Sosial",
	"R": "Jasa Lainnya",
	"S": "Jasa Lainnya",
	"T": "Jasa Lainnya",
	"U": "Jasa Lainnya",
}

// CategoryName returns the sector name for code, or "" for unknown codes.
func CategoryName(code string) string {
	return Categories[code]
}

const classifyPrompt = `Tentukan kategori utama dari teks berikut berdasarkan klasifikasi sektor ekonomi Indonesia.
Pilih **satu** jawaban yang paling sesuai dari daftar kategori berikut:

A. Pertanian, Kehutanan, dan Perikanan
A. 1. Pertanian, Peternakan, Perburuan dan Jasa Pertanian
A. 2. Kehutanan dan Penebangan Kayu
A. 3. Perikanan
B. Pertambangan dan Penggalian
B. 1. Pertambangan Minyak, Gas dan Panas Bumi
B. 2. Pertambangan Batubara dan Lignit
B. 3. Pertambangan Bijih Logam
B. 4. Pertambangan dan Penggalian Lainnya
C. Industri Pengolahan
C. 01. Industri Batubara dan Pengilangan Migas
C. 02. Industri Makanan dan Minuman
C. 03. Pengolahan Tembakau
C. 04. Industri Tekstil dan Pakaian Jadi
C. 05. Industri Kulit, Barang dari Kulit dan Alas Kaki
C. 06. Industri Kayu, Barang dari Kayu dan Gabus, Anyaman Bambu/Rotan
C. 07. Industri Kertas, Percetakan, dan Reproduksi Media Rekaman
C. 08. Industri Kimia, Farmasi dan Obat Tradisional
C. 09. Industri Karet, Plastik
C. 10. Industri Barang Galian bukan Logam
C. 11. Industri Logam Dasar
C. 12. Industri Barang Logam, Elektronik, Komputer, Optik
C. 13. Industri Mesin dan Perlengkapan YTDL
C. 14. Industri Alat Angkutan
C. 15. Industri Furnitur
C. 16. Industri Pengolahan Lainnya & Reparasi Mesin/Peralatan
D. Pengadaan Listrik dan Gas
D. 1. Ketenagalistrikan
D. 2. Pengadaan Gas dan Produksi Es
E. Pengadaan Air, Pengelolaan Sampah, Limbah, dan Daur Ulang
F. Konstruksi
G. Perdagangan Besar & Eceran; Reparasi Mobil & Sepeda Motor
G. 1. Perdagangan Mobil, Sepeda Motor dan Reparasinya
G. 2. Perdagangan Bukan Mobil/Sepeda Motor
H. Transportasi dan Pergudangan
H. 1. Angkutan Rel
H. 2. Angkutan Darat
H. 3. Angkutan Laut
H. 4. Angkutan Sungai, Danau dan Penyeberangan
H. 5. Angkutan Udara
H. 6. Pergudangan, Pos dan Kurir
I. Penyediaan Akomodasi dan Makan Minum
I. 1. Akomodasi
I. 2. Makan Minum
J. Informasi dan Komunikasi
K. Jasa Keuangan dan Asuransi
K. 1. Perantara Keuangan
K. 2. Asuransi dan Dana Pensiun
K. 3. Jasa Keuangan Lainnya
K. 4. Penunjang Keuangan
L. Real Estate
M,N. Jasa Perusahaan
O. Administrasi Pemerintahan, Pertahanan, dan Jaminan Sosial Wajib
P. Jasa Pendidikan
Q. Kesehatan dan Kegiatan Sosial
R,S,T,U. Jasa Lainnya

Jawab hanya dengan 1 huruf berikut tanpa penjelasan apapun: A, B, C, D, E, F, G, H, I, J, K, L, M, N, O, P, Q, R, S, T, atau U.

Teks: "%s"

Kategori:`

// LLMClassifier assigns a sector letter to a summary.
type LLMClassifier struct {
	llm    Completer
	logger *slog.Logger
}

// NewClassifier creates a classifier backed by llm.
func NewClassifier(llm Completer, logger *slog.Logger) *LLMClassifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMClassifier{llm: llm, logger: logger.With("component", "classifier")}
}

// Classify returns one sector letter A to U for text, or
// article.CategoryError when the model fails or answers with no letter.
func (c *LLMClassifier) Classify(ctx context.Context, text string) string {
	answer, err := c.llm.Complete(ctx, fmt.Sprintf(classifyPrompt, strings.TrimSpace(text)))
	if err != nil {
		c.logger.Warn("classification failed", "error", err)
		return article.CategoryError
	}

	code, ok := parseCategory(answer)
	if !ok {
		c.logger.Warn("unrecognized category", "answer", truncateRunes(answer, 80))
		return article.CategoryError
	}
	return code
}

// parseCategory finds the first standalone sector letter in answer, so
// "C. 10.", "**G**" and "Kategori: H" all resolve.
func parseCategory(answer string) (string, bool) {
	runes := []rune(answer)
	for i, r := range runes {
		if !unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsLetter(runes[i-1]) {
			continue
		}
		if i+1 < len(runes) && unicode.IsLetter(runes[i+1]) {
			continue
		}
		code := strings.ToUpper(string(r))
		if _, ok := Categories[code]; ok {
			return code, true
		}
	}
	return "", false
}
