package complaints

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusvoice/student-portal/internal/gateway"
)

func sampleCollection() []gateway.Complaint {
	return []gateway.Complaint{
		{ID: "c1", Status: gateway.StatusPending, Category: "hostel", Priority: gateway.PriorityHigh},
		{ID: "c2", Status: gateway.StatusResolved, Category: "hostel", Priority: gateway.PriorityLow},
		{ID: "c3", Status: gateway.StatusPending, Category: "cafeteria", Priority: gateway.PriorityHigh},
		{ID: "c4", Status: gateway.StatusInProgress, Category: "library", Priority: gateway.PriorityMedium},
	}
}

func TestApplyFilter_AllPassesEverything(t *testing.T) {
	collection := sampleCollection()
	filtered := ApplyFilter(collection, NewFilterSet())
	assert.Equal(t, collection, filtered)
}

func TestApplyFilter_EmptyDimensionsMeanAll(t *testing.T) {
	collection := sampleCollection()
	assert.Equal(t, collection, ApplyFilter(collection, FilterSet{}))
}

func TestApplyFilter_ANDSemantics(t *testing.T) {
	filtered := ApplyFilter(sampleCollection(), FilterSet{
		Status:   "pending",
		Category: "hostel",
		Priority: FilterAll,
	})
	require.Len(t, filtered, 1)
	assert.Equal(t, "c1", filtered[0].ID)
}

func TestApplyFilter_SingleDimension(t *testing.T) {
	filtered := ApplyFilter(sampleCollection(), FilterSet{Priority: "high"})
	require.Len(t, filtered, 2)
	assert.Equal(t, "c1", filtered[0].ID)
	assert.Equal(t, "c3", filtered[1].ID)
}

func TestApplyFilter_SubsetInvariant(t *testing.T) {
	collection := sampleCollection()
	filters := []FilterSet{
		{Status: "resolved"},
		{Category: "cafeteria"},
		{Status: "pending", Priority: "high"},
		{Status: "escalated"},
	}

	ids := make(map[string]bool, len(collection))
	for _, c := range collection {
		ids[c.ID] = true
	}

	for _, f := range filters {
		for _, c := range ApplyFilter(collection, f) {
			assert.True(t, ids[c.ID], "filtered element %s must come from the collection", c.ID)
		}
	}
}

func TestApplyFilter_DoesNotMutateInput(t *testing.T) {
	collection := sampleCollection()
	ApplyFilter(collection, FilterSet{Status: "resolved"})
	assert.Equal(t, sampleCollection(), collection)
}

func TestAcceptFiles_CapsAtFiveFIFO(t *testing.T) {
	var batch []DraftFile
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		batch = append(batch, DraftFile{Name: name, MediaType: "image/png", Size: 100})
	}

	accepted, rejected := DefaultAttachmentPolicy.AcceptFiles(nil, batch)
	require.Len(t, accepted, 5)
	assert.Zero(t, rejected)
	assert.Equal(t, "a", accepted[0].Name)
	assert.Equal(t, "e", accepted[4].Name)
}

func TestAcceptFiles_ExistingKeepTheirSeats(t *testing.T) {
	existing := []DraftFile{
		{Name: "old1", MediaType: "application/pdf", Size: 10},
		{Name: "old2", MediaType: "application/pdf", Size: 10},
	}
	batch := []DraftFile{
		{Name: "new1", MediaType: "image/jpeg", Size: 10},
		{Name: "new2", MediaType: "image/jpeg", Size: 10},
		{Name: "new3", MediaType: "image/jpeg", Size: 10},
		{Name: "new4", MediaType: "image/jpeg", Size: 10},
	}

	accepted, _ := DefaultAttachmentPolicy.AcceptFiles(existing, batch)
	require.Len(t, accepted, 5)
	assert.Equal(t, "old1", accepted[0].Name)
	assert.Equal(t, "new3", accepted[4].Name)
}

func TestAcceptFiles_SizeBoundary(t *testing.T) {
	atLimit := DraftFile{Name: "at", MediaType: "application/pdf", Size: 5 * 1024 * 1024}
	overLimit := DraftFile{Name: "over", MediaType: "application/pdf", Size: 5*1024*1024 + 1}

	accepted, rejected := DefaultAttachmentPolicy.AcceptFiles(nil, []DraftFile{atLimit, overLimit})
	require.Len(t, accepted, 1)
	assert.Equal(t, "at", accepted[0].Name)
	assert.Equal(t, 1, rejected)
}

func TestAcceptFiles_TypeAllowList(t *testing.T) {
	batch := []DraftFile{
		{Name: "ok.png", MediaType: "image/png", Size: 10},
		{Name: "ok.docx", MediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document", Size: 10},
		{Name: "bad.exe", MediaType: "application/x-msdownload", Size: 10},
		{Name: "bad.mp4", MediaType: "video/mp4", Size: 10},
	}

	accepted, rejected := DefaultAttachmentPolicy.AcceptFiles(nil, batch)
	assert.Len(t, accepted, 2)
	assert.Equal(t, 2, rejected)
}
