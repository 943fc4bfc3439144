package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

func newCommunityService(t *testing.T) (*CommunityService, InterfaceHouseService) {
	t.Helper()

	db := setupTestDB(t)
	houseService := NewHouseService(db, testConfig())
	communityService := NewCommunityService(db, testConfig(), houseService).(*CommunityService)
	return communityService, houseService
}

func TestCreateCommunity(t *testing.T) {
	t.Run("发起用户成为首位管理员", func(t *testing.T) {
		s, _ := newCommunityService(t)
		user := createTestUser(t, s.DB, "alice")

		community, err := s.CreateCommunity("枫叶花园", "北区", user.UserUUID)
		require.NoError(t, err)
		assert.NotEmpty(t, community.CommunityUUID)
		assert.Equal(t, "枫叶花园", community.Name)

		admins, total, err := s.GetCommunityAdmins(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, admins, 1)
		assert.Equal(t, user.UserUUID, admins[0].UserUUID)
	})

	t.Run("发起用户不存在时小区照常创建且无管理员", func(t *testing.T) {
		s, _ := newCommunityService(t)

		community, err := s.CreateCommunity("孤儿小区", "南区", utils.NewUUID())
		require.NoError(t, err)

		admins, total, err := s.GetCommunityAdmins(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, admins)
	})

	t.Run("管理员关系双向可见", func(t *testing.T) {
		s, _ := newCommunityService(t)
		user := createTestUser(t, s.DB, "bob")

		community, err := s.CreateCommunity("双向花园", "东区", user.UserUUID)
		require.NoError(t, err)

		userService := NewUserService(s.DB, testConfig())
		loaded, err := userService.GetUserByUUIDWithCommunities(user.UserUUID)
		require.NoError(t, err)
		require.Len(t, loaded.Communities, 1)
		assert.Equal(t, community.CommunityUUID, loaded.Communities[0].CommunityUUID)
	})
}

func TestGetCommunityHouses(t *testing.T) {
	t.Run("小区不存在返回ErrCommunityNotFound", func(t *testing.T) {
		s, _ := newCommunityService(t)

		_, _, err := s.GetCommunityHouses(utils.NewUUID(), 1, 10)
		assert.ErrorIs(t, err, ErrCommunityNotFound)
	})

	t.Run("小区存在但没有房屋返回空列表", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "空小区")

		houses, total, err := s.GetCommunityHouses(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, houses)
	})

	t.Run("只返回该小区的房屋", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "甲小区")
		other := createTestCommunity(t, s.DB, "乙小区")
		createTestHouse(t, s.DB, community, "1号楼101")
		createTestHouse(t, s.DB, community, "1号楼102")
		createTestHouse(t, s.DB, other, "2号楼201")

		houses, total, err := s.GetCommunityHouses(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, houses, 2)
	})
}

func TestGetCommunityAdmins(t *testing.T) {
	t.Run("小区不存在返回ErrCommunityNotFound", func(t *testing.T) {
		s, _ := newCommunityService(t)

		_, _, err := s.GetCommunityAdmins(utils.NewUUID(), 1, 10)
		assert.ErrorIs(t, err, ErrCommunityNotFound)
	})

	t.Run("小区存在但没有管理员返回空列表", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "无主小区")

		admins, total, err := s.GetCommunityAdmins(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, admins)
	})
}

func TestAddAdminsToCommunity(t *testing.T) {
	t.Run("小区不存在返回ErrCommunityNotFound", func(t *testing.T) {
		s, _ := newCommunityService(t)
		user := createTestUser(t, s.DB, "carol")

		_, err := s.AddAdminsToCommunity(utils.NewUUID(), []string{user.UserUUID})
		assert.ErrorIs(t, err, ErrCommunityNotFound)
	})

	t.Run("不存在的用户被静默跳过", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "混合小区")
		user := createTestUser(t, s.DB, "dave")

		updated, err := s.AddAdminsToCommunity(community.CommunityUUID, []string{user.UserUUID, utils.NewUUID()})
		require.NoError(t, err)
		require.Len(t, updated.Admins, 1)
		assert.Equal(t, user.UserUUID, updated.Admins[0].UserUUID)
	})

	t.Run("重复添加不会产生重复关联", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "幂等小区")
		user := createTestUser(t, s.DB, "erin")

		_, err := s.AddAdminsToCommunity(community.CommunityUUID, []string{user.UserUUID})
		require.NoError(t, err)
		updated, err := s.AddAdminsToCommunity(community.CommunityUUID, []string{user.UserUUID})
		require.NoError(t, err)
		assert.Len(t, updated.Admins, 1)

		var count int64
		require.NoError(t, s.DB.Model(&models.CommunityAdminRelation{}).
			Where("community_id = ? AND user_id = ?", community.ID, user.ID).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestAddHousesToCommunity(t *testing.T) {
	t.Run("小区不存在返回空集合且不报错", func(t *testing.T) {
		s, _ := newCommunityService(t)

		added, err := s.AddHousesToCommunity(utils.NewUUID(), []models.CommunityHouse{{Name: "1号楼101"}})
		require.NoError(t, err)
		assert.Empty(t, added)

		var count int64
		require.NoError(t, s.DB.Model(&models.CommunityHouse{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("首次提交总是新增并分配新标识", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "新建小区")

		added, err := s.AddHousesToCommunity(community.CommunityUUID, []models.CommunityHouse{
			{Name: "1号楼101"},
			{Name: "1号楼102"},
		})
		require.NoError(t, err)
		assert.Len(t, added, 2)
		assert.NotEqual(t, added[0], added[1])
	})

	t.Run("同名房屋不去重", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "重名小区")

		first, err := s.AddHousesToCommunity(community.CommunityUUID, []models.CommunityHouse{{Name: "1号楼101"}})
		require.NoError(t, err)
		require.Len(t, first, 1)

		// 同名但没有携带已返回的标识，视为新房屋
		second, err := s.AddHousesToCommunity(community.CommunityUUID, []models.CommunityHouse{{Name: "1号楼101"}})
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.NotEqual(t, first[0], second[0])

		_, total, err := s.GetCommunityHouses(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("原样重提交被跳过", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "重提交小区")

		first, err := s.AddHousesToCommunity(community.CommunityUUID, []models.CommunityHouse{{Name: "1号楼101"}})
		require.NoError(t, err)
		require.Len(t, first, 1)

		// 携带已返回的标识和相同名称重新提交
		second, err := s.AddHousesToCommunity(community.CommunityUUID, []models.CommunityHouse{
			{HouseUUID: first[0], Name: "1号楼101"},
		})
		require.NoError(t, err)
		assert.Empty(t, second)

		_, total, err := s.GetCommunityHouses(community.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestRemoveHouseFromCommunity(t *testing.T) {
	t.Run("移除成功且成员记录保留", func(t *testing.T) {
		s, houseService := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "拆迁小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")
		member := createTestMember(t, s.DB, house, "张三")

		removed, err := s.RemoveHouseFromCommunity(community.CommunityUUID, house.HouseUUID)
		require.NoError(t, err)
		assert.True(t, removed)

		// 房屋已删除
		_, err = houseService.GetHouseByUUID(house.HouseUUID)
		assert.ErrorIs(t, err, ErrHouseNotFound)

		// 成员记录仍在，房屋引用已清空
		var survivor models.HouseMember
		require.NoError(t, s.DB.Where("member_uuid = ?", member.MemberUUID).First(&survivor).Error)
		assert.Nil(t, survivor.HouseID)
	})

	t.Run("房屋不属于该小区返回false", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "甲小区")
		other := createTestCommunity(t, s.DB, "乙小区")
		house := createTestHouse(t, s.DB, other, "2号楼201")

		removed, err := s.RemoveHouseFromCommunity(community.CommunityUUID, house.HouseUUID)
		require.NoError(t, err)
		assert.False(t, removed)

		// 房屋未被动到
		var count int64
		require.NoError(t, s.DB.Model(&models.CommunityHouse{}).Where("house_uuid = ?", house.HouseUUID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("小区或房屋不存在返回false", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "丙小区")

		removed, err := s.RemoveHouseFromCommunity(utils.NewUUID(), utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = s.RemoveHouseFromCommunity(community.CommunityUUID, utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestRemoveAdminFromCommunity(t *testing.T) {
	t.Run("按标识移除后再次移除返回false", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "换届小区")
		user := createTestUser(t, s.DB, "frank")
		makeAdmin(t, s.DB, community, user)

		removed, err := s.RemoveAdminFromCommunity(community.CommunityUUID, user.UserUUID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.RemoveAdminFromCommunity(community.CommunityUUID, user.UserUUID)
		require.NoError(t, err)
		assert.False(t, removed)

		// 用户本身没有被删除
		var count int64
		require.NoError(t, s.DB.Model(&models.User{}).Where("user_uuid = ?", user.UserUUID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("用户不是该小区管理员返回false", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "无关小区")
		user := createTestUser(t, s.DB, "grace")

		removed, err := s.RemoveAdminFromCommunity(community.CommunityUUID, user.UserUUID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestDeleteCommunity(t *testing.T) {
	t.Run("级联拆除整个层级", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "整体拆除小区")
		user := createTestUser(t, s.DB, "heidi")
		makeAdmin(t, s.DB, community, user)

		houseA := createTestHouse(t, s.DB, community, "1号楼101")
		houseB := createTestHouse(t, s.DB, community, "1号楼102")
		memberA := createTestMember(t, s.DB, houseA, "张三")
		memberB := createTestMember(t, s.DB, houseB, "李四")

		amenity := &models.Amenity{AmenityUUID: utils.NewUUID(), Name: "健身房", CommunityID: community.ID}
		require.NoError(t, s.DB.Create(amenity).Error)

		deleted, err := s.DeleteCommunity(community.CommunityUUID)
		require.NoError(t, err)
		assert.True(t, deleted)

		// 小区、房屋、管理员关联、设施全部清除
		var count int64
		require.NoError(t, s.DB.Model(&models.Community{}).Where("id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, s.DB.Model(&models.CommunityHouse{}).Where("community_id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, s.DB.Model(&models.CommunityAdminRelation{}).Where("community_id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
		require.NoError(t, s.DB.Model(&models.Amenity{}).Where("community_id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)

		// 成员和用户记录保留，成员的房屋引用清空
		for _, uuid := range []string{memberA.MemberUUID, memberB.MemberUUID} {
			var survivor models.HouseMember
			require.NoError(t, s.DB.Where("member_uuid = ?", uuid).First(&survivor).Error)
			assert.Nil(t, survivor.HouseID)
		}
		require.NoError(t, s.DB.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		_, err = s.GetCommunityByUUID(community.CommunityUUID)
		assert.ErrorIs(t, err, ErrCommunityNotFound)
	})

	t.Run("不影响其他小区", func(t *testing.T) {
		s, _ := newCommunityService(t)
		target := createTestCommunity(t, s.DB, "被删小区")
		bystander := createTestCommunity(t, s.DB, "旁观小区")
		createTestHouse(t, s.DB, target, "1号楼101")
		otherHouse := createTestHouse(t, s.DB, bystander, "2号楼201")

		deleted, err := s.DeleteCommunity(target.CommunityUUID)
		require.NoError(t, err)
		assert.True(t, deleted)

		houses, total, err := s.GetCommunityHouses(bystander.CommunityUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, houses, 1)
		assert.Equal(t, otherHouse.HouseUUID, houses[0].HouseUUID)
	})

	t.Run("小区不存在返回false且无副作用", func(t *testing.T) {
		s, _ := newCommunityService(t)
		createTestCommunity(t, s.DB, "无辜小区")

		deleted, err := s.DeleteCommunity(utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, deleted)

		var count int64
		require.NoError(t, s.DB.Model(&models.Community{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("重复删除返回false", func(t *testing.T) {
		s, _ := newCommunityService(t)
		community := createTestCommunity(t, s.DB, "二次删除小区")

		deleted, err := s.DeleteCommunity(community.CommunityUUID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.DeleteCommunity(community.CommunityUUID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

// failingDetachHouseService 包装房屋服务，在第 failAt 次成员脱离时返回错误，
// 模拟级联中途的持久化失败
type failingDetachHouseService struct {
	InterfaceHouseService
	failAt int
	calls  int
}

func (s *failingDetachHouseService) DetachMemberTx(tx *gorm.DB, member *models.HouseMember) error {
	s.calls++
	if s.calls >= s.failAt {
		return errors.New("成员脱离失败")
	}
	return s.InterfaceHouseService.DetachMemberTx(tx, member)
}

func TestDeleteCommunityRollback(t *testing.T) {
	t.Run("级联中途失败整体回滚", func(t *testing.T) {
		db := setupTestDB(t)
		houseService := NewHouseService(db, testConfig())
		failing := &failingDetachHouseService{InterfaceHouseService: houseService, failAt: 2}
		s := NewCommunityService(db, testConfig(), failing).(*CommunityService)

		community := createTestCommunity(t, db, "回滚小区")
		house := createTestHouse(t, db, community, "3号楼301")
		memberA := createTestMember(t, db, house, "王五")
		memberB := createTestMember(t, db, house, "赵六")

		deleted, err := s.DeleteCommunity(community.CommunityUUID)
		require.Error(t, err)
		assert.False(t, deleted)

		// 小区和房屋原样保留
		var count int64
		require.NoError(t, db.Model(&models.Community{}).Where("id = ?", community.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
		require.NoError(t, db.Model(&models.CommunityHouse{}).Where("id = ?", house.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		// 首个成员虽已在事务内脱离，回滚后两个成员的房屋引用依然完好
		for _, uuid := range []string{memberA.MemberUUID, memberB.MemberUUID} {
			var survivor models.HouseMember
			require.NoError(t, db.Where("member_uuid = ?", uuid).First(&survivor).Error)
			require.NotNil(t, survivor.HouseID)
			assert.Equal(t, house.ID, *survivor.HouseID)
		}
	})
}
