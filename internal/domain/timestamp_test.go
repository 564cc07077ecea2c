package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmacoplus/internal/domain"
)

func TestTimestamp_WireFormat(t *testing.T) {
	c := domain.Client{FirstName: "Ana"}
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"fechaNacimiento":null`)

	c.BirthDate, err = domain.ParseTimestamp("1990-05-17")
	require.NoError(t, err)
	b, err = json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"fechaNacimiento":"1990-05-17T00:00:00.000Z"`)
}

func TestTimestamp_ParsesBackendLayouts(t *testing.T) {
	var s domain.Sale
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"fechaVenta":"2025-03-01T14:05:09","total":18.5}`), &s))
	assert.Equal(t, "01/03/2025 14:05", s.SoldAt.Display())
	assert.Equal(t, "18.5", s.Total.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"fechaVenta":null}`), &s))
	assert.False(t, s.SoldAt.Set())
	assert.Equal(t, "-", s.SoldAt.Display())

	_, err := domain.ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestMedicationForm_RoundTrip(t *testing.T) {
	f := domain.NewMedicationForm()
	f.Name = " Ibuprofeno "
	f.Price = "12.90"
	f.Stock = "5"
	f.MinStock = "8"
	f.ExpiresAt = "2027-01-15T09:30"

	m, err := f.Record()
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofeno", m.Name)
	assert.True(t, m.LowStock())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"precio":12.9`)
	assert.Contains(t, string(b), `"fechaCaducidad":"2027-01-15T09:30:00.000Z"`)
	assert.NotContains(t, string(b), `"id"`)

	back := domain.MedicationFormOf(m)
	assert.Equal(t, "2027-01-15T09:30", back.ExpiresAt)
	assert.Equal(t, "ANALGESICOS", back.Category)
}

func TestClientForm_RecordTrims(t *testing.T) {
	f := domain.NewClientForm()
	f.FirstName = "  Ana "
	f.LastName = "Quispe "
	f.Email = " ana@example.com"
	f.Phone = "5512345678 "
	f.NationalID = " 12345678"
	f.Address = "  "
	f.BirthDate = "1990-05-20"

	c, err := f.Record()
	require.NoError(t, err)
	assert.Equal(t, "Ana Quispe", c.FullName())
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "5512345678", c.Phone)
	assert.Equal(t, "12345678", c.NationalID)
	assert.Empty(t, c.Address)
	assert.Equal(t, "1990-05-20", c.BirthDate.DateInput())
	assert.Equal(t, "ACTIVO", c.Status)
}
