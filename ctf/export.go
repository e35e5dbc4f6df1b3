package ctf

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"
)

// CTFRow is one exported coefficient row.
type CTFRow struct {
	Construction string  `csv:"construction"`
	TimeStep     float64 `csv:"time_step"`
	Term         int     `csv:"term"`
	Outside      float64 `csv:"outside"`
	Cross        float64 `csv:"cross"`
	Inside       float64 `csv:"inside"`
	// empty on term 0
	Flux string `csv:"flux"`
}

// CTFRows flattens the solved constructions, term 0 first.
func CTFRows(cs []*Construction) []*CTFRow {
	var rows []*CTFRow
	for _, c := range cs {
		s := c.CTF
		if s == nil {
			continue
		}
		for j := 0; j <= s.NumTerms; j++ {
			r := &CTFRow{
				Construction: c.Name,
				TimeStep:     s.TimeStep,
				Term:         j,
				Outside:      s.Outside[j],
				Cross:        s.Cross[j],
				Inside:       s.Inside[j],
			}
			if j > 0 {
				r.Flux = strconv.FormatFloat(s.Flux[j-1], 'g', -1, 64)
			}
			rows = append(rows, r)
		}
	}
	return rows
}

// ExportCSV writes the coefficients of every solved construction.
func ExportCSV(w io.Writer, cs []*Construction) error {
	return gocsv.Marshal(CTFRows(cs), w)
}
