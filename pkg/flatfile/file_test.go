package flatfile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/rental-manager/pkg/rental"
)

func TestLoadAll_MissingFile(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "houses.txt"), rental.HouseCodec)

	records, skipped, err := f.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
	assert.Zero(t, skipped)
}

func TestLoadAll_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "houses.txt")
	content := "1,Paris,1000.0,2,Bob\n" +
		"garbage line\n" +
		"\n" +
		"2,Lyon,abc,1,Eve\n" +
		"3,Nice,800.5,1,Carol\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, skipped, err := New(path, rental.HouseCodec).LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []rental.House{
		{ID: 1, Location: "Paris", Price: 1000, Bedrooms: 2, OwnerInfo: "Bob"},
		{ID: 3, Location: "Nice", Price: 800.5, Bedrooms: 1, OwnerInfo: "Carol"},
	}, records)
}

func TestLoadAll_SkipsOversizedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "houses.txt")
	content := "1,Paris,1000.0,2,Bob\n" +
		strings.Repeat("x", 2*maxLineSize) + "\n" +
		"2,Lyon,900.0,1,Eve"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	records, skipped, err := New(path, rental.HouseCodec).LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []rental.House{
		{ID: 1, Location: "Paris", Price: 1000, Bedrooms: 2, OwnerInfo: "Bob"},
		{ID: 2, Location: "Lyon", Price: 900, Bedrooms: 1, OwnerInfo: "Eve"},
	}, records)
}

func TestReadLine(t *testing.T) {
	r := bufio.NewReaderSize(strings.NewReader("short\n"+strings.Repeat("y", 40)+"\nlast"), 16)

	line, tooLong, err := readLine(r, 32)
	require.NoError(t, err)
	assert.Equal(t, "short", line)
	assert.False(t, tooLong)

	line, tooLong, err = readLine(r, 32)
	require.NoError(t, err)
	assert.Empty(t, line)
	assert.True(t, tooLong)

	line, tooLong, err = readLine(r, 32)
	require.NoError(t, err)
	assert.Equal(t, "last", line)
	assert.False(t, tooLong)

	_, _, err = readLine(r, 32)
	assert.ErrorIs(t, err, io.EOF)
}

func TestLoadAll_ReadFailure(t *testing.T) {
	dir := t.TempDir()

	_, _, err := New(dir, rental.HouseCodec).LoadAll()
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestSaveAll_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "houses.txt")
	f := New(path, rental.HouseCodec)
	houses := []rental.House{
		{ID: 2, Location: "Paris", Price: 1000, Bedrooms: 2, OwnerInfo: "Bob"},
		{ID: 1, Location: "Lyon", Price: 750.25, Bedrooms: 1, OwnerInfo: "Eve"},
	}

	require.NoError(t, f.SaveAll(houses))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, f.SaveAll(houses))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "2,Paris,1000.0,2,Bob\n1,Lyon,750.25,1,Eve\n", string(first))

	loaded, _, err := f.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, houses, loaded)
}

func TestSaveAll_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenants.txt")
	f := New(path, rental.TenantCodec)

	require.NoError(t, f.SaveAll([]rental.Tenant{{Name: "Alice"}, {Name: "Bob"}}))
	require.NoError(t, f.SaveAll([]rental.Tenant{{Name: "Bob"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob,,\n", string(data))

	require.NoError(t, f.SaveAll(nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestSaveAll_EncodeFailureKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tenants.txt")
	f := New(path, rental.TenantCodec)
	require.NoError(t, f.SaveAll([]rental.Tenant{{Name: "Alice"}}))

	err := f.SaveAll([]rental.Tenant{{Name: "Alice"}, {Name: "Smith, John"}})
	assert.ErrorIs(t, err, rental.ErrDelimiterInField)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice,,\n", string(data))
}

func TestSaveAll_WriteFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	f := New(filepath.Join(blocker, "houses.txt"), rental.HouseCodec)
	err := f.SaveAll([]rental.House{{ID: 1}})
	assert.ErrorIs(t, err, ErrIOFailure)
}

func TestAppendOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "payments.txt")
	f := New(path, rental.PaymentCodec)

	p1 := rental.Payment{TenantName: "Alice", HouseID: 5, Amount: 1200}
	p2 := rental.Payment{TenantName: "Bob", HouseID: 6, Amount: 900, IsPaid: true}
	require.NoError(t, f.AppendOne(p1))
	require.NoError(t, f.AppendOne(p2))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Alice,5,1200.0,0001-01-01,false\nBob,6,900.0,0001-01-01,true\n", string(data))

	loaded, skipped, err := f.LoadAll()
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, loaded, 2)
	assert.Equal(t, "Bob", loaded[1].TenantName)
	assert.True(t, loaded[1].IsPaid)
}

func TestAppendOne_WriteFailure(t *testing.T) {
	dir := t.TempDir()

	err := New(dir, rental.PaymentCodec).AppendOne(rental.Payment{TenantName: "Alice"})
	assert.ErrorIs(t, err, ErrIOFailure)
}
