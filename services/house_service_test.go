package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

func newHouseService(t *testing.T) *HouseService {
	t.Helper()

	db := setupTestDB(t)
	return NewHouseService(db, testConfig()).(*HouseService)
}

func TestGetHouseByUUID(t *testing.T) {
	t.Run("返回房屋及其成员", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "样板小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")
		createTestMember(t, s.DB, house, "张三")

		loaded, err := s.GetHouseByUUID(house.HouseUUID)
		require.NoError(t, err)
		assert.Equal(t, house.Name, loaded.Name)
		assert.Len(t, loaded.Members, 1)
	})

	t.Run("房屋不存在返回ErrHouseNotFound", func(t *testing.T) {
		s := newHouseService(t)

		_, err := s.GetHouseByUUID(utils.NewUUID())
		assert.ErrorIs(t, err, ErrHouseNotFound)
	})
}

func TestGetHouseMembers(t *testing.T) {
	t.Run("房屋不存在返回ErrHouseNotFound", func(t *testing.T) {
		s := newHouseService(t)

		_, _, err := s.GetHouseMembers(utils.NewUUID(), 1, 10)
		assert.ErrorIs(t, err, ErrHouseNotFound)
	})

	t.Run("房屋存在但没有成员返回空列表", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "空房小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")

		members, total, err := s.GetHouseMembers(house.HouseUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, members)
	})

	t.Run("只返回该房屋的成员", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "多房小区")
		houseA := createTestHouse(t, s.DB, community, "1号楼101")
		houseB := createTestHouse(t, s.DB, community, "1号楼102")
		createTestMember(t, s.DB, houseA, "张三")
		createTestMember(t, s.DB, houseA, "李四")
		createTestMember(t, s.DB, houseB, "王五")

		members, total, err := s.GetHouseMembers(houseA.HouseUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, members, 2)
	})
}

func TestAddHouseMembers(t *testing.T) {
	t.Run("房屋不存在返回空列表且无写入", func(t *testing.T) {
		s := newHouseService(t)

		saved, err := s.AddHouseMembers(utils.NewUUID(), []models.HouseMember{{Name: "张三"}})
		require.NoError(t, err)
		assert.Empty(t, saved)

		var count int64
		require.NoError(t, s.DB.Model(&models.HouseMember{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("调用方传入的标识被覆盖", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "入住小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")

		callerUUID := utils.NewUUID()
		saved, err := s.AddHouseMembers(house.HouseUUID, []models.HouseMember{
			{MemberUUID: callerUUID, Name: "张三"},
			{Name: "李四"},
		})
		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.NotEqual(t, callerUUID, saved[0].MemberUUID)
		assert.NotEqual(t, saved[0].MemberUUID, saved[1].MemberUUID)

		for _, m := range saved {
			require.NotNil(t, m.HouseID)
			assert.Equal(t, house.ID, *m.HouseID)
		}

		_, total, err := s.GetHouseMembers(house.HouseUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})
}

func TestDeleteMemberFromHouse(t *testing.T) {
	t.Run("移除后成员记录保留且引用清空", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "离场小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")
		member := createTestMember(t, s.DB, house, "张三")

		removed, err := s.DeleteMemberFromHouse(house.HouseUUID, member.MemberUUID)
		require.NoError(t, err)
		assert.True(t, removed)

		var survivor models.HouseMember
		require.NoError(t, s.DB.Where("member_uuid = ?", member.MemberUUID).First(&survivor).Error)
		assert.Nil(t, survivor.HouseID)

		// 成员已不在房屋下，再次移除返回false
		removed, err = s.DeleteMemberFromHouse(house.HouseUUID, member.MemberUUID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("成员属于其他房屋返回false", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "错位小区")
		houseA := createTestHouse(t, s.DB, community, "1号楼101")
		houseB := createTestHouse(t, s.DB, community, "1号楼102")
		member := createTestMember(t, s.DB, houseB, "张三")

		removed, err := s.DeleteMemberFromHouse(houseA.HouseUUID, member.MemberUUID)
		require.NoError(t, err)
		assert.False(t, removed)

		// 成员的归属没有被动到
		var untouched models.HouseMember
		require.NoError(t, s.DB.Where("member_uuid = ?", member.MemberUUID).First(&untouched).Error)
		require.NotNil(t, untouched.HouseID)
		assert.Equal(t, houseB.ID, *untouched.HouseID)
	})

	t.Run("房屋或成员不存在返回false", func(t *testing.T) {
		s := newHouseService(t)
		community := createTestCommunity(t, s.DB, "空号小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")

		removed, err := s.DeleteMemberFromHouse(utils.NewUUID(), utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, removed)

		removed, err = s.DeleteMemberFromHouse(house.HouseUUID, utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestListMembersForAdminUser(t *testing.T) {
	t.Run("返回所辖小区下所有房屋的成员", func(t *testing.T) {
		s := newHouseService(t)
		admin := createTestUser(t, s.DB, "ivan")
		managed := createTestCommunity(t, s.DB, "所辖小区")
		unmanaged := createTestCommunity(t, s.DB, "无关小区")
		makeAdmin(t, s.DB, managed, admin)

		houseA := createTestHouse(t, s.DB, managed, "1号楼101")
		houseB := createTestHouse(t, s.DB, managed, "1号楼102")
		houseC := createTestHouse(t, s.DB, unmanaged, "2号楼201")
		createTestMember(t, s.DB, houseA, "张三")
		createTestMember(t, s.DB, houseB, "李四")
		createTestMember(t, s.DB, houseC, "王五")

		members, total, err := s.ListMembersForAdminUser(admin.UserUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, members, 2)
	})

	t.Run("用户不存在返回ErrUserNotFound", func(t *testing.T) {
		s := newHouseService(t)

		_, _, err := s.ListMembersForAdminUser(utils.NewUUID(), 1, 10)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("用户不管理任何小区返回空列表", func(t *testing.T) {
		s := newHouseService(t)
		user := createTestUser(t, s.DB, "judy")
		community := createTestCommunity(t, s.DB, "他人小区")
		house := createTestHouse(t, s.DB, community, "1号楼101")
		createTestMember(t, s.DB, house, "张三")

		members, total, err := s.ListMembersForAdminUser(user.UserUUID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, members)
	})
}
