package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/importdesk/pkg/domain/entities"
)

const materialsCSV = `name,code,category,description,supplier,origin_country,unit_price,unit,min_order_qty,lead_time_days,status,tariff_rate,required_documents
Steel Rod,SR-12,Metals,Hot rolled,Acme Steel,Germany,12.50,kg,100,10,Active,5,Invoice;Certificate of origin
Epoxy Resin,ER-9,chemicals,,PolyChem,Korea,40,lt,20,21,InProcess,7.5,
`

func TestLoader_LoadMaterials(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/materials.csv", []byte(materialsCSV), 0o644))

	inputs, err := NewLoaderFs(fs).LoadMaterials("/data/materials.csv")
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	steel := inputs[0]
	assert.Equal(t, "Steel Rod", steel.Name)
	assert.Equal(t, entities.Metals, steel.Category)
	assert.True(t, steel.UnitPrice.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, entities.Kilogram, steel.Unit)
	assert.Equal(t, 100, steel.MinOrderQty)
	assert.Equal(t, 10, steel.LeadTimeDays)
	assert.Equal(t, []string{"Invoice", "Certificate of origin"}, steel.RequiredDocuments)

	resin := inputs[1]
	assert.Equal(t, entities.Chemicals, resin.Category)
	assert.Equal(t, entities.Liter, resin.Unit)
	assert.Equal(t, entities.MaterialInProcess, resin.Status)
	assert.True(t, resin.TariffRate.Equal(decimal.RequireFromString("7.5")))
	assert.Empty(t, resin.RequiredDocuments)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoaderFs(afero.NewMemMapFs()).LoadMaterials("nope.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open materials file nope.csv")
}

func TestReadMaterials_HeaderMismatch(t *testing.T) {
	_, err := ReadMaterials(strings.NewReader("name,code\nSteel,SR\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header mismatch")
}

func TestReadMaterials_HeaderOnly(t *testing.T) {
	_, err := ReadMaterials(strings.NewReader(strings.Join(MaterialHeader, ",") + "\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one data row")
}

func TestReadMaterials_ReportsEveryBadRow(t *testing.T) {
	input := strings.Join(MaterialHeader, ",") + "\n" +
		"Steel Rod,SR-12,Metals,,Acme,DE,abc,kg,100,10,Active,5,\n" +
		"Copper,CW-2,Metals,,Andes,CL,3,kg,10,5,Active,5,\n" +
		"Glass,GL-1,Ceramics,,Vitro,MX,3,kg,10,5,Active,5,\n"

	inputs, err := ReadMaterials(strings.NewReader(input))
	require.Error(t, err)
	assert.Nil(t, inputs)
	assert.Contains(t, err.Error(), "row 2: invalid unit_price: abc")
	assert.Contains(t, err.Error(), `row 4: unknown category "Ceramics"`)
	assert.NotContains(t, err.Error(), "row 3")
}

func TestWriteMaterials_RoundTrips(t *testing.T) {
	materials := []*entities.Material{{
		Name:              "Steel Rod",
		Code:              "SR-12",
		Category:          entities.Metals,
		Supplier:          "Acme, GmbH",
		OriginCountry:     "Germany",
		UnitPrice:         decimal.RequireFromString("12.5"),
		Unit:              entities.Kilogram,
		MinOrderQty:       100,
		LeadTimeDays:      10,
		Status:            entities.MaterialActive,
		TariffRate:        decimal.NewFromInt(5),
		RequiredDocuments: []string{"Invoice", "Packing list"},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteMaterials(&buf, materials))

	inputs, err := ReadMaterials(&buf)
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Acme, GmbH", inputs[0].Supplier)
	assert.Equal(t, []string{"Invoice", "Packing list"}, inputs[0].RequiredDocuments)
}
