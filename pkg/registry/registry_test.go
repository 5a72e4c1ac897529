package registry

import (
	"sync"
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/prompt"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlow(name string) *domain.Flow {
	return &domain.Flow{
		Name:         name,
		InputSchema:  schema.Schema{"message": schema.Required(schema.String())},
		OutputSchema: schema.Schema{"response": schema.Required(schema.String())},
		Prompt:       prompt.MustParse("{{message}}"),
	}
}

func TestRegistry_RegisterThenLookup(t *testing.T) {
	r := New()
	flow := testFlow("chatAssistantFlow")

	require.NoError(t, r.Register(flow))

	got, err := r.Lookup("chatAssistantFlow")
	require.NoError(t, err)
	assert.Same(t, flow, got)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := New()
	first := testFlow("chatAssistantFlow")
	require.NoError(t, r.Register(first))

	err := r.Register(testFlow("chatAssistantFlow"))
	assert.ErrorIs(t, err, ErrDuplicateFlow)

	got, _ := r.Lookup("chatAssistantFlow")
	assert.Same(t, first, got, "the first definition must be kept")
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := New().Lookup("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_RejectsInvalidDefinitions(t *testing.T) {
	r := New()

	noPrompt := testFlow("a")
	noPrompt.Prompt = nil
	assert.Error(t, r.Register(noPrompt))

	noOutput := testFlow("b")
	noOutput.OutputSchema = nil
	assert.Error(t, r.Register(noOutput))

	assert.Error(t, r.Register(testFlow("")))
	assert.Error(t, r.Register(nil))
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Seal(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testFlow("a")))
	r.Seal()
	r.Seal()

	assert.ErrorIs(t, r.Register(testFlow("b")), ErrSealed)
	_, err := r.Lookup("a")
	assert.NoError(t, err)
}

func TestRegistry_ListIsSorted(t *testing.T) {
	r := New()
	r.MustRegister(testFlow("planMyDayFlow"), testFlow("chatAssistantFlow"), testFlow("explainRecommendationFlow"))

	assert.Equal(t, []string{"chatAssistantFlow", "explainRecommendationFlow", "planMyDayFlow"}, r.Names())
	assert.Len(t, r.List(), 3)
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	r := New()
	assert.Panics(t, func() { r.MustRegister(testFlow("x"), testFlow("x")) })
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	r := New()
	r.MustRegister(testFlow("a"))
	r.Seal()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Lookup("a")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
