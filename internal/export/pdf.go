package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/recetario/backend/internal/models"
)

// Renderer turns hydrated recipes and cookbooks into documents.
// Implementations must not perform I/O.
type Renderer interface {
	RenderRecipe(recipe *models.RecipeWithOwner) ([]byte, error)
	RenderCookbook(cookbook *models.CookbookWithOwner) ([]byte, error)
}

type rgb struct{ r, g, b int }

var (
	colorTitle    = rgb{0x29, 0x25, 0x24}
	colorSubtitle = rgb{0x57, 0x53, 0x4e}
	colorMeta     = rgb{0x78, 0x71, 0x6c}
	colorText     = rgb{0, 0, 0}
)

const (
	margin = 72.0

	sizeTitle       = 24.0
	sizeCoverTitle  = 36.0
	sizeHeading     = 16.0
	sizeBody        = 11.0
	sizeMeta        = 10.0
	sizeDescription = 14.0

	fontFamily = "Helvetica"
)

// PDFRenderer lays documents out on A4 pages in points.
type PDFRenderer struct{}

var _ Renderer = PDFRenderer{}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{}
}

func (PDFRenderer) RenderRecipe(recipe *models.RecipeWithOwner) ([]byte, error) {
	if recipe == nil {
		return nil, fmt.Errorf("nil recipe")
	}
	doc := newDocument(recipe.Title)
	doc.pdf.AddPage()
	doc.recipe(&recipe.Recipe, recipe.Owner.Username)
	return doc.bytes()
}

// RenderCookbook writes a cover page, an index and one section per member.
func (PDFRenderer) RenderCookbook(cookbook *models.CookbookWithOwner) ([]byte, error) {
	if cookbook == nil {
		return nil, fmt.Errorf("nil cookbook")
	}
	doc := newDocument(cookbook.Title)

	doc.pdf.AddPage()
	doc.pdf.Ln(144)
	doc.paragraph(cookbook.Title, "B", sizeCoverTitle, colorTitle, "C")
	doc.pdf.Ln(8)
	doc.paragraph("Recetario hecho por "+cookbook.Owner.Username, "", sizeMeta, colorMeta, "C")
	doc.pdf.Ln(36)
	if cookbook.Description != nil && *cookbook.Description != "" {
		doc.paragraph(*cookbook.Description, "", sizeDescription, colorText, "C")
	}

	doc.pdf.AddPage()
	doc.paragraph("Índice", "B", sizeTitle, colorTitle, "C")
	doc.pdf.Ln(20)
	if len(cookbook.Recipes) == 0 {
		doc.paragraph("Sin recetas aún.", "", sizeBody, colorText, "L")
	}
	for i, r := range cookbook.Recipes {
		doc.paragraph(fmt.Sprintf("%d. %s", i+1, r.Title), "", sizeBody, colorText, "L")
		doc.pdf.Ln(6)
	}

	for i := range cookbook.Recipes {
		doc.pdf.AddPage()
		doc.recipe(&cookbook.Recipes[i].Recipe, "")
	}

	return doc.bytes()
}

type document struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(title, true)
	pdf.SetCreator("recetario", true)
	return &document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (d *document) paragraph(text, style string, size float64, c rgb, align string) {
	d.pdf.SetFont(fontFamily, style, size)
	d.pdf.SetTextColor(c.r, c.g, c.b)
	d.pdf.MultiCell(0, size*1.45, d.tr(text), "", align, false)
}

func (d *document) heading(text string) {
	d.pdf.Ln(20)
	d.paragraph(text, "B", sizeHeading, colorSubtitle, "L")
	d.pdf.Ln(10)
}

// recipe writes one recipe starting at the current position. author is
// omitted from the meta line when empty.
func (d *document) recipe(r *models.Recipe, author string) {
	d.paragraph(r.Title, "B", sizeTitle, colorTitle, "C")
	d.pdf.Ln(12)
	d.paragraph(MetaLine(r, author), "", sizeMeta, colorMeta, "C")
	d.pdf.Ln(20)

	if r.Notes != nil && strings.TrimSpace(*r.Notes) != "" {
		d.heading("Notas")
		d.paragraph(*r.Notes, "", sizeBody, colorText, "L")
	}

	d.heading("Ingredientes")
	for _, ing := range r.Ingredients {
		d.paragraph(IngredientLine(ing), "", sizeBody, colorText, "L")
		d.pdf.Ln(4)
	}

	d.heading("Preparación")
	for _, step := range Steps(r.Instructions, r.InstructionsFormat) {
		d.paragraph(step, "", sizeBody, colorText, "L")
		d.pdf.Ln(8)
	}
}

// MetaLine renders "COUNTRY | DIFFICULTY | N MIN | POR AUTHOR" in upper case.
func MetaLine(r *models.Recipe, author string) string {
	country := "Internacional"
	if r.Country != nil && *r.Country != "" {
		country = *r.Country
	}
	parts := []string{
		country,
		r.Difficulty,
		fmt.Sprintf("%d min", r.PreparationTimeMinutes),
	}
	if author != "" {
		parts = append(parts, "Por "+author)
	}
	return strings.ToUpper(strings.Join(parts, " | "))
}

// IngredientLine renders "• name (amount unit)", leaving out empty parts.
func IngredientLine(ing models.Ingredient) string {
	var qty []string
	if ing.Amount != nil && *ing.Amount != "" {
		qty = append(qty, *ing.Amount)
	}
	if ing.Unit != nil && *ing.Unit != "" {
		qty = append(qty, *ing.Unit)
	}
	line := "• " + ing.Name
	if len(qty) > 0 {
		line += " (" + strings.Join(qty, " ") + ")"
	}
	return line
}

// Steps splits instructions on newlines and drops blank lines. Numbered
// instructions get a running "N. " prefix.
func Steps(instructions, format string) []string {
	var steps []string
	for _, line := range strings.Split(instructions, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if format == models.InstructionsNumbered {
			line = fmt.Sprintf("%d. %s", len(steps)+1, line)
		}
		steps = append(steps, line)
	}
	return steps
}
