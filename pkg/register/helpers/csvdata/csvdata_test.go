package csvdata_test

import (
	"strings"
	"testing"

	"github.com/medregister-pl/asset-register/pkg/register/helpers/csvdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := "nazwa,numer seryjny,oddzial\nEKG,SN-1,Kardiologia\nUSG,SN-2,Radiologia\n"

	columns, rows, err := csvdata.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"nazwa", "numer seryjny", "oddzial"}, columns)
	require.Len(t, rows, 2)
	assert.Equal(t, "SN-2", rows[1]["numer seryjny"])
}

func TestReadShortRow(t *testing.T) {
	in := "a,b\n1\n"

	_, rows, err := csvdata.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["a"])
	assert.Equal(t, "", rows[0]["b"])
}

func TestReadEmpty(t *testing.T) {
	_, _, err := csvdata.Read(strings.NewReader(""))
	assert.ErrorIs(t, err, csvdata.ErrEmptyFile)
}
