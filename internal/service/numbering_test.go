package service_test

import (
	"testing"
	"time"

	"github.com/HostingCuenca/vet-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbering_SequentialPerKind(t *testing.T) {
	seq := &stubSequenceRepo{last: make(map[string]int64)}
	n := service.NewNumbering(seq, time.UTC).WithClock(func() time.Time { return fixedDay })

	var sales []string
	for i := 0; i < 3; i++ {
		num, err := n.Next(nil, service.KindSale)
		require.NoError(t, err)
		sales = append(sales, num)
	}
	session, err := n.Next(nil, service.KindSession)
	require.NoError(t, err)
	receipt, err := n.Next(nil, service.KindReceipt)
	require.NoError(t, err)

	assert.Equal(t, []string{"VTA20261015001", "VTA20261015002", "VTA20261015003"}, sales)
	assert.Equal(t, "CSH20261015001", session)
	assert.Equal(t, "REC202610150001", receipt)
}

func TestNumbering_NewDayRestartsCounter(t *testing.T) {
	seq := &stubSequenceRepo{last: make(map[string]int64)}
	now := fixedDay
	n := service.NewNumbering(seq, time.UTC).WithClock(func() time.Time { return now })

	first, err := n.Next(nil, service.KindSale)
	require.NoError(t, err)
	now = now.Add(24 * time.Hour)
	second, err := n.Next(nil, service.KindSale)
	require.NoError(t, err)

	assert.Equal(t, "VTA20261015001", first)
	assert.Equal(t, "VTA20261016001", second)
}

func TestNumbering_UsesBusinessTimeZone(t *testing.T) {
	seq := &stubSequenceRepo{last: make(map[string]int64)}
	guayaquil := time.FixedZone("ECT", -5*60*60)
	// 02:00 UTC on the 16th is still the evening of the 15th at the clinic.
	utc := time.Date(2026, 10, 16, 2, 0, 0, 0, time.UTC)
	n := service.NewNumbering(seq, guayaquil).WithClock(func() time.Time { return utc })

	num, err := n.Next(nil, service.KindSession)

	require.NoError(t, err)
	assert.Equal(t, "CSH20261015001", num)
	assert.Equal(t, guayaquil, n.Now().Location())
}

func TestNumbering_WidthOverflowKeepsDigits(t *testing.T) {
	seq := &stubSequenceRepo{last: map[string]int64{"VTA20261015": 999}}
	n := service.NewNumbering(seq, time.UTC).WithClock(func() time.Time { return fixedDay })

	num, err := n.Next(nil, service.KindSale)

	require.NoError(t, err)
	assert.Equal(t, "VTA202610151000", num)
}
