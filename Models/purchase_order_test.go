package Models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePO(t *testing.T) *PurchaseOrder {
	items, err := json.Marshal([]POItem{
		{Description: "Cartons 5-ply", Unit: "pcs", Quantity: 500, Rate: 42},
	})
	require.NoError(t, err)
	return &PurchaseOrder{
		PONumber:       "PO-2081-014",
		Date:           "2024-07-01",
		CompanyName:    "Shree Packaging Udhyog",
		CompanyAddress: "Birgunj",
		PAN:            "301234567",
		InvoiceType:    "Taxable",
		Status:         "Pending",
		Items:          items,
	}
}

func TestSnapshotVersionCapturesPreUpdateState(t *testing.T) {
	po := samplePO(t)
	now := time.Date(2024, time.July, 5, 10, 30, 0, 0, time.UTC)

	version := SnapshotVersion(po, "binod", now)

	assert.Equal(t, "binod", version.EditedBy)
	assert.Equal(t, po.Date, version.Date)
	assert.Equal(t, po.CompanyName, version.Company)
	assert.Equal(t, po.CompanyAddress, version.Address)
	assert.Equal(t, po.PAN, version.PAN)
	assert.Equal(t, po.Status, version.Status)
	require.Len(t, version.Items, 1)
	assert.Equal(t, "Cartons 5-ply", version.Items[0].Description)
	assert.NotEmpty(t, version.VersionID)
}

func TestAppendVersionGrowsByExactlyOne(t *testing.T) {
	po := samplePO(t)

	for i := 1; i <= 5; i++ {
		version := SnapshotVersion(po, "binod", time.Now())
		updated, err := AppendVersion(po.Versions, version)
		require.NoError(t, err)
		po.Versions = updated

		var versions []POVersion
		require.NoError(t, json.Unmarshal(po.Versions, &versions))
		assert.Len(t, versions, i)
	}
}

func TestAppendVersionPreservesEarlierEntries(t *testing.T) {
	po := samplePO(t)

	first := SnapshotVersion(po, "binod", time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC))
	updated, err := AppendVersion(po.Versions, first)
	require.NoError(t, err)
	po.Versions = updated

	// Mutate the document the way an update handler would, then snapshot again.
	po.Status = "Delivered"
	second := SnapshotVersion(po, "sunita", time.Date(2024, 7, 9, 0, 0, 0, 0, time.UTC))
	updated, err = AppendVersion(po.Versions, second)
	require.NoError(t, err)
	po.Versions = updated

	var versions []POVersion
	require.NoError(t, json.Unmarshal(po.Versions, &versions))
	require.Len(t, versions, 2)
	assert.Equal(t, "Pending", versions[0].Status)
	assert.Equal(t, "Delivered", versions[1].Status)
	assert.Equal(t, "binod", versions[0].EditedBy)
	assert.Equal(t, "sunita", versions[1].EditedBy)
}

func TestSnapshotVersionToleratesMalformedItems(t *testing.T) {
	po := samplePO(t)
	po.Items = []byte("{not json")

	version := SnapshotVersion(po, "binod", time.Now())
	assert.Empty(t, version.Items)
}
