package ctf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Schema header lines, one per table. Tags and column order are read by
// downstream tools and must not change.
var reportHeaders = []string{
	"! <Construction CTF>,Construction Name,Index,#Layers,#CTFs,Time Step {hours},ThermalConductance {w/m2-K}," +
		"OuterThermalAbsorptance,InnerThermalAbsorptance,OuterSolarAbsorptance,InnerSolarAbsorptance,Roughness",
	"! <Material CTF Summary>,Material Name,Thickness {m},Conductivity {w/m-K},Density {kg/m3},Specific Heat {J/kg-K}," +
		"ThermalResistance {m2-K/w}",
	"! <Material:Air>,Material Name,ThermalResistance {m2-K/w}",
	"! <CTF>,Time,Outside,Cross,Inside,Flux (except final one)",
}

// ReportWriter writes the constructions report.
type ReportWriter struct {
	w    io.Writer
	show bool
}

// NewReportWriter returns a writer to w; show is the user request for the report.
func NewReportWriter(w io.Writer, show bool) *ReportWriter {
	return &ReportWriter{w: w, show: show}
}

/*
Write emits the report if the user asked for it or becauseError is set.

	Args:
		cs: all constructions, in input order
		becauseError: at least one construction failed

Constructions not used by a surface are skipped but still counted in the index.
*/
func (rw *ReportWriter) Write(cs []*Construction, becauseError bool) error {
	if !rw.show && !becauseError {
		return nil
	}

	bw := bufio.NewWriter(rw.w)
	for _, h := range reportHeaders {
		fmt.Fprintln(bw, h)
	}

	for i, c := range cs {
		if !c.IsUsedCTF {
			continue
		}
		writeConstruction(bw, c, i+1)
	}
	return bw.Flush()
}

func writeConstruction(w io.Writer, c *Construction, index int) {
	if c.Err != nil || c.CTF == nil {
		kind, msg := "Error", "no CTF calculated"
		var ce *ConstructionError
		if errors.As(c.Err, &ce) {
			kind, msg = ce.KindName(), ce.Detail
		} else if c.Err != nil {
			msg = c.Err.Error()
		}
		fmt.Fprintf(w, " Construction CTF Error,%s,%4d,%s,%s\n", c.Name, index, kind, msg)
		return
	}

	s := c.CTF
	fmt.Fprintf(w, " Construction CTF,%s,%4d,%4d,%4d,%8.3f,%15.4G,%8.3f,%8.3f,%8.3f,%8.3f,%s\n",
		c.Name, index, c.TotLayers(), s.NumTerms, s.TimeStep, c.ThermalConductance,
		c.OutsideAbsorpThermal, c.InsideAbsorpThermal, c.OutsideAbsorpSolar, c.InsideAbsorpSolar,
		c.OutsideRoughness)

	for _, l := range c.Layers {
		if l.Kind == Regular {
			fmt.Fprintf(w, " Material CTF Summary,%s,%8.4f,%14.3f,%11.3f,%13.3f,%12.4G\n",
				l.Name, l.Thickness, l.Conductivity, l.Density, l.SpecificHeat, l.ThermalResistance())
		} else {
			fmt.Fprintf(w, " Material:Air,%s,%12.4G\n", l.Name, l.Resistance)
		}
	}

	// newest history term first; term 0 has no flux history
	for j := s.NumTerms; j >= 0; j-- {
		if j > 0 {
			fmt.Fprintf(w, " CTF,%4d,%20.8G,%20.8G,%20.8G,%20.8G\n",
				j, s.Outside[j], s.Cross[j], s.Inside[j], s.Flux[j-1])
		} else {
			fmt.Fprintf(w, " CTF,%4d,%20.8G,%20.8G,%20.8G\n",
				j, s.Outside[j], s.Cross[j], s.Inside[j])
		}
	}
}
