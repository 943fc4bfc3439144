package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thingsinjars/MyHome-sub000/models"
	"github.com/thingsinjars/MyHome-sub000/utils"
)

func newDocumentService(t *testing.T) *DocumentService {
	t.Helper()

	db := setupTestDB(t)
	return NewDocumentService(db, testConfig()).(*DocumentService)
}

func TestGetMemberDocument(t *testing.T) {
	t.Run("成员不存在返回ErrMemberNotFound", func(t *testing.T) {
		s := newDocumentService(t)

		_, err := s.GetMemberDocument(utils.NewUUID())
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("成员存在但没有文档返回ErrDocumentNotFound", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "张三")

		_, err := s.GetMemberDocument(member.MemberUUID)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}

func TestAttachDocument(t *testing.T) {
	t.Run("创建并关联文档", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "张三")

		document, err := s.AttachDocument(member.MemberUUID, "id-card.pdf", []byte("pdf-bytes"))
		require.NoError(t, err)
		assert.NotEmpty(t, document.DocumentUUID)

		loaded, err := s.GetMemberDocument(member.MemberUUID)
		require.NoError(t, err)
		assert.Equal(t, document.DocumentUUID, loaded.DocumentUUID)
		assert.Equal(t, "id-card.pdf", loaded.Filename)
		assert.Equal(t, []byte("pdf-bytes"), loaded.Content)
	})

	t.Run("再次上传替换旧文档且旧记录保留", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "李四")

		old, err := s.AttachDocument(member.MemberUUID, "old.pdf", []byte("old"))
		require.NoError(t, err)
		replacement, err := s.AttachDocument(member.MemberUUID, "new.pdf", []byte("new"))
		require.NoError(t, err)

		loaded, err := s.GetMemberDocument(member.MemberUUID)
		require.NoError(t, err)
		assert.Equal(t, replacement.DocumentUUID, loaded.DocumentUUID)

		// 旧文档记录还在，等待显式清除
		var count int64
		require.NoError(t, s.DB.Model(&models.HouseMemberDocument{}).Where("document_uuid = ?", old.DocumentUUID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("成员不存在返回ErrMemberNotFound", func(t *testing.T) {
		s := newDocumentService(t)

		_, err := s.AttachDocument(utils.NewUUID(), "id-card.pdf", []byte("pdf"))
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestRemoveMemberDocument(t *testing.T) {
	t.Run("解绑只清空引用", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "张三")
		document, err := s.AttachDocument(member.MemberUUID, "id-card.pdf", []byte("pdf"))
		require.NoError(t, err)

		removed, err := s.RemoveMemberDocument(member.MemberUUID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = s.GetMemberDocument(member.MemberUUID)
		assert.ErrorIs(t, err, ErrDocumentNotFound)

		// 文档记录仍在
		var count int64
		require.NoError(t, s.DB.Model(&models.HouseMemberDocument{}).Where("document_uuid = ?", document.DocumentUUID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("成员没有文档返回false", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "李四")

		removed, err := s.RemoveMemberDocument(member.MemberUUID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("成员不存在返回false", func(t *testing.T) {
		s := newDocumentService(t)

		removed, err := s.RemoveMemberDocument(utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestPurgeDocument(t *testing.T) {
	t.Run("清除仍被引用的文档会先解绑", func(t *testing.T) {
		s := newDocumentService(t)
		member := createTestMember(t, s.DB, nil, "张三")
		document, err := s.AttachDocument(member.MemberUUID, "id-card.pdf", []byte("pdf"))
		require.NoError(t, err)

		purged, err := s.PurgeDocument(document.DocumentUUID)
		require.NoError(t, err)
		assert.True(t, purged)

		var count int64
		require.NoError(t, s.DB.Model(&models.HouseMemberDocument{}).Where("document_uuid = ?", document.DocumentUUID).Count(&count).Error)
		assert.Equal(t, int64(0), count)

		var survivor models.HouseMember
		require.NoError(t, s.DB.Where("member_uuid = ?", member.MemberUUID).First(&survivor).Error)
		assert.Nil(t, survivor.DocumentID)
	})

	t.Run("文档不存在返回false", func(t *testing.T) {
		s := newDocumentService(t)

		purged, err := s.PurgeDocument(utils.NewUUID())
		require.NoError(t, err)
		assert.False(t, purged)
	})
}
