package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".docent", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("completion.model", "gpt-4o-mini"))

	val, ok := store.Get("completion.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", val)

	val, ok = store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("documents.dir", "data"))
	require.NoError(t, store.Set("completion.max_tokens", 1500))
	require.NoError(t, store.Set("completion.temperature", 0.3))
	require.NoError(t, store.Set("watch.enabled", true))
	require.NoError(t, store.Set("documents.extensions", []string{".pdf", ".docx"}))

	assert.Equal(t, "data", store.GetString("documents.dir"))
	assert.Equal(t, 1500, store.GetInt("completion.max_tokens"))
	assert.Equal(t, 0.3, store.GetFloat("completion.temperature"))
	assert.True(t, store.GetBool("watch.enabled"))
	assert.Equal(t, []string{".pdf", ".docx"}, store.GetStringSlice("documents.extensions"))
}

func TestConfigStore_TypedGetters_MissingOrWrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("string_key", "not a number"))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("string_key"))
	assert.Equal(t, 0.0, store.GetFloat("string_key"))
	assert.False(t, store.GetBool("string_key"))
	assert.Nil(t, store.GetStringSlice("string_key"))
}

func TestConfigStore_GetFloat_WholeNumber(t *testing.T) {
	tmpDir := t.TempDir()

	// A whole-number TOML value comes back as int64 on reload; GetFloat
	// must still read it.
	content := []byte("[completion]\ntemperature = 1\n")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 1.0, store.GetFloat("completion.temperature"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()

	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("language", "ar"))
	require.NoError(t, store1.Set("budget.fair_share", 20000))
	require.NoError(t, store1.Set("watch.enabled", true))

	// A fresh instance loads from the same file.
	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "ar", store2.GetString("language"))
	assert.Equal(t, 20000, store2.GetInt("budget.fair_share"))
	assert.True(t, store2.GetBool("watch.enabled"))
}

func TestConfigStore_NestedTablesFlatten(t *testing.T) {
	tmpDir := t.TempDir()

	content := []byte(`
language = "fr"

[completion]
model = "gpt-4o-mini"
max_tokens = 1500

[documents]
dir = "data"
`)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), content, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "fr", store.GetString("language"))
	assert.Equal(t, "gpt-4o-mini", store.GetString("completion.model"))
	assert.Equal(t, 1500, store.GetInt("completion.max_tokens"))
	assert.Equal(t, "data", store.GetString("documents.dir"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("completion.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte{}, 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	val, ok := store.Get("any_key")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not toml {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_NestedDirectoryCreated(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "deep")

	store, err := NewConfigStore(nested)

	require.NoError(t, err)
	require.NotNil(t, store)

	info, err := os.Stat(nested)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestConfigStore_OverwriteValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("speech.voice", "alloy"))
	require.NoError(t, store.Set("speech.voice", "nova"))

	assert.Equal(t, "nova", store.GetString("speech.voice"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func(id int) {
			key := "key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.GetString(key)
			_, _ = store.Get(key)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
