package ctf

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// MaterialRow is one row of the materials table.
type MaterialRow struct {
	Name               string  `csv:"name" yaml:"name"`
	Kind               string  `csv:"kind" yaml:"kind"`
	Thickness          float64 `csv:"thickness" yaml:"thickness"`
	Conductivity       float64 `csv:"conductivity" yaml:"conductivity"`
	Density            float64 `csv:"density" yaml:"density"`
	SpecificHeat       float64 `csv:"specific_heat" yaml:"specific_heat"`
	Resistance         float64 `csv:"resistance" yaml:"resistance"`
	ThermalAbsorptance float64 `csv:"thermal_absorptance" yaml:"thermal_absorptance"`
	SolarAbsorptance   float64 `csv:"solar_absorptance" yaml:"solar_absorptance"`
	Roughness          string  `csv:"roughness" yaml:"roughness"`
}

// ConstructionLayerRow is one layer of one construction, layers numbered from 1 inside.
type ConstructionLayerRow struct {
	Construction string `csv:"construction"`
	Layer        int    `csv:"layer"`
	Material     string `csv:"material"`
	Used         bool   `csv:"used"`
}

type constructionDoc struct {
	Name   string   `yaml:"name"`
	Used   bool     `yaml:"used"`
	Layers []string `yaml:"layers"`
}

type modelDoc struct {
	Materials     []MaterialRow     `yaml:"materials"`
	Constructions []constructionDoc `yaml:"constructions"`
}

func (r MaterialRow) layer() (MaterialLayer, error) {
	kind, err := ParseLayerKind(r.Kind)
	if err != nil {
		return MaterialLayer{}, fmt.Errorf("material %s: %w", r.Name, err)
	}
	roughness, err := ParseRoughness(r.Roughness)
	if err != nil {
		return MaterialLayer{}, fmt.Errorf("material %s: %w", r.Name, err)
	}

	l := MaterialLayer{
		Name:               r.Name,
		Kind:               kind,
		Thickness:          r.Thickness,
		Conductivity:       r.Conductivity,
		Density:            r.Density,
		SpecificHeat:       r.SpecificHeat,
		Resistance:         r.Resistance,
		ThermalAbsorptance: r.ThermalAbsorptance,
		SolarAbsorptance:   r.SolarAbsorptance,
		Roughness:          roughness,
	}

	switch kind {
	case Regular:
		if l.Thickness <= 0.0 || l.Conductivity <= 0.0 {
			return MaterialLayer{}, fmt.Errorf("material %s: thickness and conductivity must be positive", r.Name)
		}
	default:
		if l.Resistance <= 0.0 {
			return MaterialLayer{}, fmt.Errorf("material %s: resistance must be positive", r.Name)
		}
	}
	return l, nil
}

func materialIndex(rows []MaterialRow) (map[string]MaterialLayer, error) {
	index := make(map[string]MaterialLayer, len(rows))
	for _, r := range rows {
		if _, ok := index[r.Name]; ok {
			return nil, fmt.Errorf("material %s defined twice", r.Name)
		}
		l, err := r.layer()
		if err != nil {
			return nil, err
		}
		index[r.Name] = l
	}
	return index, nil
}

func buildConstruction(name string, used bool, names []string, materials map[string]MaterialLayer) (*Construction, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("construction %s has no layers", name)
	}
	layers := make([]MaterialLayer, len(names))
	for i, m := range names {
		l, ok := materials[m]
		if !ok {
			return nil, fmt.Errorf("construction %s: unknown material %s", name, m)
		}
		layers[i] = l
	}
	return NewConstruction(name, used, layers...), nil
}

/*
ReadCSV reads the materials and construction-layer tables.

Constructions keep the order in which they first appear in the layer table.
*/
func ReadCSV(materials io.Reader, constructions io.Reader) ([]*Construction, error) {
	var mrows []MaterialRow
	if err := gocsv.Unmarshal(materials, &mrows); err != nil {
		return nil, fmt.Errorf("read materials: %w", err)
	}
	var crows []ConstructionLayerRow
	if err := gocsv.Unmarshal(constructions, &crows); err != nil {
		return nil, fmt.Errorf("read constructions: %w", err)
	}

	index, err := materialIndex(mrows)
	if err != nil {
		return nil, err
	}

	var order []string
	byName := make(map[string][]ConstructionLayerRow)
	for _, r := range crows {
		if _, ok := byName[r.Construction]; !ok {
			order = append(order, r.Construction)
		}
		byName[r.Construction] = append(byName[r.Construction], r)
	}

	cs := make([]*Construction, 0, len(order))
	for _, name := range order {
		rows := byName[name]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Layer < rows[j].Layer })

		names := make([]string, len(rows))
		for i, r := range rows {
			if r.Layer != i+1 {
				return nil, fmt.Errorf("construction %s: layer %d missing", name, i+1)
			}
			names[i] = r.Material
		}
		c, err := buildConstruction(name, rows[0].Used, names, index)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// LoadCSV opens and reads the two tables.
func LoadCSV(materialsPath, constructionsPath string) ([]*Construction, error) {
	mf, err := os.Open(materialsPath)
	if err != nil {
		return nil, err
	}
	defer mf.Close()

	cf, err := os.Open(constructionsPath)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	return ReadCSV(mf, cf)
}

// ReadYAML reads a model document with materials and constructions.
func ReadYAML(r io.Reader) ([]*Construction, error) {
	var doc modelDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	index, err := materialIndex(doc.Materials)
	if err != nil {
		return nil, err
	}

	cs := make([]*Construction, 0, len(doc.Constructions))
	for _, d := range doc.Constructions {
		c, err := buildConstruction(d.Name, d.Used, d.Layers, index)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	return cs, nil
}

// LoadYAML opens and reads a model document.
func LoadYAML(path string) ([]*Construction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadYAML(f)
}
