package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/MahidharReddy003/aislingshot-sub000/pkg/adapters/memory"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/domain"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/persistence/middleware"
	"github.com/MahidharReddy003/aislingshot-sub000/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func secure(t *testing.T, next ports.ProfileStore, cfg middleware.EncryptionConfig) ports.ProfileStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	store := secure(t, memory.NewStore(), middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunProfileStoreContract(t, store)
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	store := secure(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ctx := context.Background()

	original := &domain.UserProfile{
		Name:             "Priya",
		Location:         "Bengaluru",
		HealthConditions: []string{"asthma"},
	}
	require.NoError(t, store.Save(ctx, "u1", original))
	assert.Equal(t, "Bengaluru", original.Location, "caller's profile must not be modified")

	raw, err := underlying.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Priya", raw.Name)
	assert.True(t, strings.HasPrefix(raw.Location, "enc:v1:"))
	assert.NotContains(t, raw.HealthConditions[0], "asthma")

	loaded, err := store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Bengaluru", loaded.Location)
	assert.Equal(t, []string{"asthma"}, loaded.HealthConditions)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	require.NoError(t, secure(t, underlying, middleware.EncryptionConfig{ActiveKey: oldKey}).
		Save(ctx, "u1", &domain.UserProfile{Location: "Porto"}))

	rotated := secure(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	loaded, err := rotated.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Porto", loaded.Location)

	withoutOld := secure(t, underlying, middleware.EncryptionConfig{ActiveKey: newKey})
	_, err = withoutOld.Load(ctx, "u1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_PlainValuesPassThrough(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "legacy", &domain.UserProfile{Location: "Lisbon"}))

	loaded, err := secure(t, underlying, middleware.EncryptionConfig{ActiveKey: generateKey(t)}).Load(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", loaded.Location)
}

func TestNewEncryptionMiddleware_RejectsBadKeys(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	parsed, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, parsed)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)
	_, err = middleware.ParseKey("%%%")
	assert.Error(t, err)
}

func TestChain_OrderIsOutermostFirst(t *testing.T) {
	var order []string
	tag := func(name string) middleware.Middleware {
		return func(next ports.ProfileStore) ports.ProfileStore {
			return &recording{ProfileStore: next, name: name, order: &order}
		}
	}

	store := middleware.Chain(memory.NewStore(), tag("outer"), tag("inner"))
	require.NoError(t, store.Save(context.Background(), "u", &domain.UserProfile{}))
	assert.Equal(t, []string{"outer", "inner"}, order)
}

type recording struct {
	ports.ProfileStore
	name  string
	order *[]string
}

func (r *recording) Save(ctx context.Context, userID string, p *domain.UserProfile) error {
	*r.order = append(*r.order, r.name)
	return r.ProfileStore.Save(ctx, userID, p)
}
