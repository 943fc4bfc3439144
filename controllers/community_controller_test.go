package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/services/container"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// setupCommunityRouter 构建一个带内存数据库的小区路由。
// Redis 指向一个不可达的地址，缓存读写全部走失败分支，处理函数必须照常工作。
func setupCommunityRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.CommunityAdminRelation{},
		&models.CommunityHouse{},
		&models.HouseMemberDocument{},
		&models.HouseMember{},
		&models.Amenity{},
	)
	require.NoError(t, err)

	cfg := &config.Config{EnvType: "LOCAL", RedisHost: "127.0.0.1", RedisPort: "1"}
	c := container.NewServiceContainer(db, cfg, nil)

	r := gin.New()
	r.GET("/communities/:id", HandleCommunityFunc(c, "getCommunity"))
	r.DELETE("/communities/:id", HandleCommunityFunc(c, "deleteCommunity"))
	return r, db
}

func TestGetCommunityWithCache(t *testing.T) {
	t.Run("缓存不可用时回落到数据库", func(t *testing.T) {
		r, db := setupCommunityRouter(t)

		community := &models.Community{
			CommunityUUID: utils.NewUUID(),
			Name:          "缓存花园",
			District:      "北区",
			Status:        "active",
		}
		require.NoError(t, db.Create(community).Error)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/communities/"+community.CommunityUUID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "缓存花园")
	})

	t.Run("小区不存在返回404", func(t *testing.T) {
		r, _ := setupCommunityRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/communities/"+utils.NewUUID(), nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteCommunityInvalidatesCache(t *testing.T) {
	t.Run("缓存失效出错不影响删除结果", func(t *testing.T) {
		r, db := setupCommunityRouter(t)

		community := &models.Community{
			CommunityUUID: utils.NewUUID(),
			Name:          "待删花园",
			District:      "南区",
			Status:        "active",
		}
		require.NoError(t, db.Create(community).Error)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/communities/"+community.CommunityUUID, nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		require.NoError(t, db.Model(&models.Community{}).Where("id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}
