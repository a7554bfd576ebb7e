package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreadcrumbsFor_AlwaysThreeHops(t *testing.T) {
	for _, et := range EntityTypes() {
		trail := BreadcrumbsFor(et, "Some Title", "some-title")
		require.Len(t, trail, 3, "entity type %s", et)

		assert.Equal(t, "Home", trail[0].Label)
		assert.Equal(t, "/", trail[0].Href)

		assert.Equal(t, et.HubLabel(), trail[1].Label)
		assert.Equal(t, et.SectionPath(), trail[1].Href)

		assert.Equal(t, "Some Title", trail[2].Label)
		assert.Equal(t, et.SectionPath()+"some-title", trail[2].Href)

		for i, item := range trail {
			assert.Equal(t, i+1, item.Position)
		}
	}
}

func TestBreadcrumbsFor_PlaceDetail(t *testing.T) {
	trail := BreadcrumbsFor(EntityPlace, "Bethany", "bethany")
	require.Len(t, trail, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{trail[0].Position, trail[1].Position, trail[2].Position})
	assert.Equal(t, "/places/bethany", trail[2].Href)
	assert.Equal(t, "Places", trail[1].Label)
}
