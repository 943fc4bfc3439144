package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/thingsinjars/MyHome-sub000/config"
	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

// setupTestDB 创建一个内存数据库并迁移所有模型，每个测试用例独立
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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

	return db
}

func testConfig() *config.Config {
	return &config.Config{EnvType: "LOCAL"}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		UserUUID: utils.NewUUID(),
		Username: username,
		Password: "test-password",
		Email:    username + "@example.com",
		Role:     "admin",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCommunity(t *testing.T, db *gorm.DB, name string) *models.Community {
	t.Helper()

	community := &models.Community{
		CommunityUUID: utils.NewUUID(),
		Name:          name,
		District:      "北区",
		Status:        "active",
	}
	require.NoError(t, db.Create(community).Error)
	return community
}

func createTestHouse(t *testing.T, db *gorm.DB, community *models.Community, name string) *models.CommunityHouse {
	t.Helper()

	house := &models.CommunityHouse{
		HouseUUID:   utils.NewUUID(),
		Name:        name,
		CommunityID: community.ID,
	}
	require.NoError(t, db.Create(house).Error)
	return house
}

func createTestMember(t *testing.T, db *gorm.DB, house *models.CommunityHouse, name string) *models.HouseMember {
	t.Helper()

	member := &models.HouseMember{
		MemberUUID: utils.NewUUID(),
		Name:       name,
		Phone:      "13800000000",
	}
	if house != nil {
		member.HouseID = &house.ID
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func makeAdmin(t *testing.T, db *gorm.DB, community *models.Community, user *models.User) {
	t.Helper()

	relation := &models.CommunityAdminRelation{
		CommunityID: community.ID,
		UserID:      user.ID,
	}
	require.NoError(t, db.Create(relation).Error)
}
