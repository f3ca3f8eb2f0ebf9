package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/toolhub/pkg/domain/model"
)

func TestTool_Copy(t *testing.T) {
	now := time.Now()
	orig := &model.Tool{ID: "text-stats", Name: "Text Stats", UsageCount: 3, LastUsed: &now}

	copied := orig.Copy()
	gt.Value(t, copied.ID).Equal(orig.ID)
	gt.Value(t, copied.UsageCount).Equal(int64(3))

	later := now.Add(time.Hour)
	*copied.LastUsed = later
	gt.Bool(t, orig.LastUsed.Equal(now)).True()

	var nilTool *model.Tool
	gt.Value(t, nilTool.Copy()).Nil()
}

func TestUser_CopyAndFavorites(t *testing.T) {
	orig := &model.User{ID: "u1", Favorites: []model.ToolID{"a", "b"}}
	copied := orig.Copy()
	copied.Favorites[0] = "z"

	gt.Value(t, orig.Favorites[0]).Equal(model.ToolID("a"))
	gt.Bool(t, orig.HasFavorite("b")).True()
	gt.Bool(t, orig.HasFavorite("z")).False()
}

func TestNewUserID(t *testing.T) {
	a := model.NewUserID()
	b := model.NewUserID()
	gt.Value(t, a).NotEqual(b)
	gt.Number(t, len(a)).Equal(36)
}
