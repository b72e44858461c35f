package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shard-legends/codex-service/internal/catalog"
	"github.com/shard-legends/codex-service/internal/inventory"
	"github.com/shard-legends/codex-service/internal/matcher"
	"github.com/shard-legends/codex-service/internal/models"
	"github.com/shard-legends/codex-service/internal/ranking"
)

// table is one exported sheet
type table struct {
	name   string
	header []interface{}
	rows   [][]interface{}
}

func itemsTable(cat *catalog.Catalog, cmp ranking.Comparator[models.Item]) table {
	items := cat.Items()
	if cmp != nil {
		ranking.SortItems(items, cmp)
	}

	t := table{
		name:   "Items",
		header: []interface{}{"id", "name", "rarity", "type", "value", "sources", "description"},
	}
	for _, it := range items {
		t.rows = append(t.rows, []interface{}{
			it.ID, it.Name, string(it.Rarity), it.Type, it.Value,
			strings.Join(it.Sources, "; "), it.Description,
		})
	}
	return t
}

func recipesTable(cat *catalog.Catalog) table {
	t := table{
		name:   "Recipes",
		header: []interface{}{"result", "group", "subgroup", "ingredients", "tools", "result_known"},
	}
	for _, r := range cat.Recipes() {
		class := r.Class()
		_, known := cat.FindItemByName(r.Result)
		t.rows = append(t.rows, []interface{}{
			r.Result, class.Group, class.Subgroup,
			strings.Join(r.Ingredients, "; "), strings.Join(r.Tools, "; "), known,
		})
	}
	return t
}

func craftableTable(cat *catalog.Catalog, snap inventory.Snapshot) table {
	t := table{
		name:   "Craftable",
		header: []interface{}{"result", "type", "ingredients", "tools", "new"},
	}
	for _, res := range matcher.Results(cat, snap) {
		t.rows = append(t.rows, []interface{}{
			res.Recipe.Result, res.Recipe.Type,
			strings.Join(res.Recipe.Ingredients, "; "), strings.Join(res.Recipe.Tools, "; "), res.IsNew,
		})
	}
	return t
}

func writeXLSX(path string, tables []table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(t.name); err != nil {
			return err
		}

		// StreamWriter for efficiency on large tables
		sw, err := f.NewStreamWriter(t.name)
		if err != nil {
			return err
		}
		if err := sw.SetRow("A1", t.header); err != nil {
			return err
		}
		for r, row := range t.rows {
			cellAddr, _ := excelize.CoordinatesToCellName(1, r+2)
			if err := sw.SetRow(cellAddr, row); err != nil {
				return err
			}
		}
		if err := sw.Flush(); err != nil {
			return err
		}
	}
	return f.SaveAs(path)
}

// writeCSV writes the first table to path and every further table next to it as <stem>-<name>.csv.
// It returns the written paths.
func writeCSV(path string, tables []table) ([]string, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	var written []string
	for i, t := range tables {
		target := path
		if i > 0 {
			target = fmt.Sprintf("%s-%s%s", stem, strings.ToLower(t.name), ext)
		}
		if err := writeCSVTable(target, t); err != nil {
			return written, err
		}
		written = append(written, target)
	}
	return written, nil
}

func writeCSVTable(path string, t table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(toStrings(t.header)); err != nil {
		return err
	}
	for _, row := range t.rows {
		if err := w.Write(toStrings(row)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func toStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = fmt.Sprint(v)
	}
	return out
}
