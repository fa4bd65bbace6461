// Package handler はcatalogフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"petstore_backend/internal/feature/catalog/domain/entity"
	"petstore_backend/internal/feature/catalog/transport/http/dto"
	"petstore_backend/internal/feature/catalog/usecase"
	"petstore_backend/internal/shared/apperr"
	"petstore_backend/internal/shared/reqbody"
)

// アップロード制限です。
const (
	maxUploadFiles = 10
	maxUploadSize  = 5 * 1024 * 1024 // 5MiB per file
	uploadField    = "images"
)

// petKeys はペットのボディallowlistです。
var petKeys = []string{"category", "name", "tags", "status"}

// 受け付ける画像のMIMEタイプと保存時の拡張子です。
var imageExtByType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpeg",
}

// CatalogUsecase はカタログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CatalogUsecase interface {
	CreatePet(ctx context.Context, in usecase.CreatePetInput) (*entity.Pet, error)
	GetPet(ctx context.Context, id uint) (*entity.Pet, error)
	GetAllPets(ctx context.Context) ([]entity.Pet, error)
	FindByStatus(ctx context.Context, status string) ([]entity.Pet, error)
	UpdatePet(ctx context.Context, id uint, in usecase.UpdatePetInput) (*entity.Pet, error)
	DeletePet(ctx context.Context, id uint) error
	AttachPhotos(ctx context.Context, petID uint, urls []string) ([]entity.Photo, error)
}

// PetHandler はカタログ操作のHTTPリクエストを処理します。
// uploadDirは画像の保存先ディレクトリで、/images以下で静的配信されます。
type PetHandler struct {
	catalog   CatalogUsecase
	uploadDir string
}

// NewPetHandler はPetHandlerの新しいインスタンスを生成します。
func NewPetHandler(catalog CatalogUsecase, uploadDir string) *PetHandler {
	return &PetHandler{catalog: catalog, uploadDir: uploadDir}
}

// respondError はエラー種別をHTTPステータスに変換して返却します。
func respondError(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("catalog request failed", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	} else {
		slog.Warn("catalog request rejected", "error", err, "path", c.FullPath(), "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.MessageRes{Message: apperr.Public(err)})
}

// parseIDParam は:idパスパラメータを数値IDに変換します。
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperr.Newf(apperr.Validation, "invalid id: %q", c.Param("id"))
	}
	return uint(id), nil
}

// Create はペット作成APIエンドポイントを処理します。
// カテゴリとタグは同一トランザクション内でfind-or-createされます。
func (h *PetHandler) Create(c *gin.Context) {
	var req dto.CreatePetReq
	if err := reqbody.DecodeStrict(c.Request.Body, petKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.CreatePetInput{
		Category: req.Category,
		Name:     req.Name,
		Tags:     req.Tags,
		Status:   req.Status,
	}
	pet, err := h.catalog.CreatePet(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("pet created", "pet_id", pet.ID, "name", pet.Name)
	c.JSON(http.StatusCreated, dto.PetMutationRes{Message: "Create pet successfully", PetID: pet.ID})
}

// Get はペット1件の取得を処理します（公開エンドポイント）。
func (h *PetHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	pet, err := h.catalog.GetPet(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPetRes(pet))
}

// GetAll は全ペットの一覧取得を処理します（公開エンドポイント）。
func (h *PetHandler) GetAll(c *gin.Context) {
	pets, err := h.catalog.GetAllPets(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPetResList(pets))
}

// FindByStatus はステータス別のペット検索を処理します。
// statusクエリパラメータは必須です。
func (h *PetHandler) FindByStatus(c *gin.Context) {
	pets, err := h.catalog.FindByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPetResList(pets))
}

// Update はペットの部分更新を処理します。
func (h *PetHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdatePetReq
	if err := reqbody.DecodeStrict(c.Request.Body, petKeys, &req); err != nil {
		respondError(c, err)
		return
	}

	in := usecase.UpdatePetInput{
		Category: req.Category,
		Name:     req.Name,
		Tags:     req.Tags,
	}
	if req.Status != nil {
		s := entity.PetStatus(*req.Status)
		in.Status = &s
	}

	pet, err := h.catalog.UpdatePet(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PetMutationRes{Message: "Update pet successfully", PetID: pet.ID})
}

// Delete はペット削除を処理します。availableなペットのみ削除できます。
func (h *PetHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.catalog.DeletePet(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "Delete pet successfully"})
}

// UploadImages はペット画像のアップロードを処理します。
// multipartのimagesフィールドから最大10ファイル（各5MiB、png/jpegのみ）を受け付け、
// 保存したファイルごとにPhoto行を作成します。
func (h *PetHandler) UploadImages(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, apperr.New(apperr.Validation, "invalid multipart form"))
		return
	}

	files := form.File[uploadField]
	if len(files) == 0 {
		respondError(c, usecase.ErrNoImages)
		return
	}
	if len(files) > maxUploadFiles {
		respondError(c, apperr.Newf(apperr.Validation, "too many files: at most %d images are accepted", maxUploadFiles))
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		ext, ok := imageExtByType[file.Header.Get("Content-Type")]
		if !ok {
			respondError(c, apperr.Newf(apperr.Validation, "%s is invalid. Only accept png/jpeg.", file.Filename))
			return
		}
		if file.Size > maxUploadSize {
			respondError(c, apperr.Newf(apperr.Validation, "%s is too large. Max size is 5MB.", file.Filename))
			return
		}

		name := uuid.NewString() + "." + ext
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			respondError(c, err)
			return
		}
		urls = append(urls, "/images/"+name)
	}

	photos, err := h.catalog.AttachPhotos(c.Request.Context(), id, urls)
	if err != nil {
		respondError(c, err)
		return
	}

	slog.Info("pet images uploaded", "pet_id", id, "count", len(photos))
	c.JSON(http.StatusOK, dto.NewPhotoResList(photos))
}
