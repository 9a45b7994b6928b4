// Package report renders a record's draft into the downloadable PDF
// artifact, named by client code in the reports store.
package report

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/models"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/services"
	"github.com/vishalvaishnavrk-ops/jyotish-backend/internal/storage"
)

const (
	letterheadTitle    = "Achary Vishal Vaishnav"
	letterheadSubtitle = "Palmistry & Jyotish Consultancy"

	notGeneratedBody = "Report not generated yet.\nThe reading for this client is still being prepared."
)

// Block is one visual unit of the report body: a section heading or a run
// of body text.
type Block struct {
	Heading bool
	Text    string
}

// Blocks splits a sanitized draft on the section delimiter into render
// blocks. Fragments beginning with a digit are section headings carrying
// the template's section number.
func Blocks(draft string) []Block {
	var blocks []Block
	for _, frag := range strings.Split(draft, services.SectionDelimiter) {
		frag = strings.TrimSpace(frag)
		if frag == "" {
			continue
		}
		heading := frag[0] >= '0' && frag[0] <= '9'
		if heading {
			// First line is the numbered heading, the rest is body.
			head, body, found := strings.Cut(frag, "\n")
			blocks = append(blocks, Block{Heading: true, Text: head})
			if found && strings.TrimSpace(body) != "" {
				blocks = append(blocks, Block{Text: strings.TrimSpace(body)})
			}
			continue
		}
		blocks = append(blocks, Block{Text: frag})
	}
	return blocks
}

// Renderer writes report PDFs into the reports store.
type Renderer struct {
	Reports *storage.Store
}

func NewRenderer(reports *storage.Store) *Renderer {
	return &Renderer{Reports: reports}
}

// Render lays out the letterhead, client-info table and one block per draft
// section, then writes {client_code}.pdf, overwriting any earlier render.
// A placeholder draft still produces a PDF with a "not generated yet" body.
func (r *Renderer) Render(rec *models.ClientRecord) (string, error) {
	draft := rec.AIDraft
	if strings.TrimSpace(draft) == "" || draft == models.PlaceholderDraft {
		draft = notGeneratedBody
	}
	draft = Sanitize(draft)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(10, text.NewCol(12, letterheadTitle, props.Text{
		Size:  18,
		Style: fontstyle.Bold,
		Align: align.Center,
	}))
	m.AddRow(7, text.NewCol(12, letterheadSubtitle, props.Text{
		Size:  11,
		Align: align.Center,
		Color: &props.Color{Red: 90, Green: 90, Blue: 90},
	}))
	m.AddRows(line.NewRow(4))

	for _, pair := range [][2]string{
		{"Client Code", rec.ClientCode},
		{"Name", Sanitize(rec.Name)},
		{"Phone", rec.Phone},
		{"Plan", Sanitize(rec.Plan)},
		{"Date", rec.CreatedAt.Format("02 Jan 2006")},
	} {
		m.AddRow(6,
			text.NewCol(3, pair[0], props.Text{Size: 10, Style: fontstyle.Bold}),
			text.NewCol(9, pair[1], props.Text{Size: 10}),
		)
	}
	m.AddRows(line.NewRow(6))

	for _, b := range Blocks(draft) {
		m.AddRows(blockRow(b))
	}

	doc, err := m.Generate()
	if err != nil {
		return "", fmt.Errorf("report: generate pdf: %w", err)
	}
	name := rec.ClientCode + ".pdf"
	if err := r.Reports.Write(name, doc.GetBytes()); err != nil {
		return "", err
	}
	return name, nil
}

const bodyCharsPerLine = 90

func blockRow(b Block) core.Row {
	if b.Heading {
		return row.New(8).Add(text.NewCol(12, b.Text, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Top:   2,
		}))
	}
	return row.New(bodyHeight(b.Text)).Add(
		col.New(12).Add(text.New(b.Text, props.Text{Size: 10})),
	)
}

// bodyHeight estimates the row height needed for wrapped body text.
func bodyHeight(s string) float64 {
	lines := strings.Count(s, "\n") + 1
	for _, ln := range strings.Split(s, "\n") {
		if extra := len(ln) / bodyCharsPerLine; extra > 0 {
			lines += extra
		}
	}
	return float64(lines)*5 + 3
}
