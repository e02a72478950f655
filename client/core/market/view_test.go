package market

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weisyn/nftmarket/client/core/registry"
)

func TestViewState_ReplaceTokensIsFullReplacement(t *testing.T) {
	v := NewViewState()
	v.ReplaceTokens([]registry.Token{{ID: big.NewInt(1)}, {ID: big.NewInt(2)}, {ID: big.NewInt(3)}})

	s := []registry.Token{{ID: big.NewInt(7)}}
	v.ReplaceTokens(s)
	assert.Equal(t, s, v.Tokens())

	v.ReplaceTokens(nil)
	assert.Empty(t, v.Tokens())
}

func TestViewState_TokensReturnsCopy(t *testing.T) {
	v := NewViewState()
	src := []registry.Token{{ID: big.NewInt(1), URI: "a"}}
	v.ReplaceTokens(src)
	src[0].URI = "mutated"

	got := v.Tokens()
	assert.Equal(t, "a", got[0].URI)
	got[0].URI = "also mutated"
	assert.Equal(t, "a", v.Tokens()[0].URI)
}

func TestViewState_StageReplaces(t *testing.T) {
	v := NewViewState()
	assert.Nil(t, v.Staged())

	v.Stage(StagedFile{Name: "a.png", Data: []byte("aaa")})
	v.Stage(StagedFile{Name: "b.png", Data: []byte("b")})

	s := v.Staged()
	assert.Equal(t, "b.png", s.Name)
	assert.Equal(t, []byte("b"), s.Data)

	snap := v.Snapshot()
	assert.Equal(t, &StagedInfo{Name: "b.png", Size: 1, ContentType: "image/png"}, snap.Staged)
	assert.False(t, snap.Connected)
	assert.Empty(t, snap.Account)
}

func TestActionState_Terminal(t *testing.T) {
	assert.True(t, StateResynced.Terminal())
	assert.True(t, StateRejected.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateSubmitted.Terminal())
	assert.False(t, StateConfirmed.Terminal())
}
