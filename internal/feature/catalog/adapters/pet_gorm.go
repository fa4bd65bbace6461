// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petstore_backend/internal/feature/catalog/domain/entity"
	"petstore_backend/internal/feature/catalog/usecase"
)

// isDuplicateEntry はユニークキー重複エラーかどうかを判定します。
// MySQLエラー1062のほか、テストで使用するSQLiteのUNIQUE制約違反も検出します。
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// petGorm はPetRepositoryインターフェースのGORM実装です。
// 複数テーブルに跨がる書き込みはすべて単一トランザクションで実行します。
type petGorm struct {
	db *gorm.DB
}

// petGormがPetRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.PetRepository = (*petGorm)(nil)

// NewPetGorm は指定されたgorm.DB接続でpetGormの新しいインスタンスを生成します。
func NewPetGorm(db *gorm.DB) *petGorm {
	return &petGorm{db: db}
}

// findOrCreateTags はタグ名をfind-or-createし、重複名を除いたタグ集合を返します。
func findOrCreateTags(tx *gorm.DB, names []string) ([]entity.Tag, error) {
	tags := make([]entity.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		var tag entity.Tag
		if err := tx.Where(entity.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to find or create tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// CreateWithAssociations は1トランザクション内でカテゴリのfind-or-create、
// ペット作成、タグのfind-or-createとリンク作成を行います。
// いずれかが失敗した場合、全体がロールバックされます。
func (r *petGorm) CreateWithAssociations(ctx context.Context, pet *entity.Pet, categoryName string, tagNames []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category entity.Category
		if err := tx.Where(entity.Category{Name: categoryName}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("failed to find or create category %q: %w", categoryName, err)
		}
		pet.CategoryID = category.ID
		pet.Category = category

		// 関連はこの関数内で明示的に張るため、gormの自動保存は抑止する
		if err := tx.Omit(clause.Associations).Create(pet).Error; err != nil {
			if isDuplicateEntry(err) {
				return usecase.ErrPetNameTaken
			}
			return err
		}

		tags, err := findOrCreateTags(tx, tagNames)
		if err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(pet).Association("Tags").Append(&tags); err != nil {
				return fmt.Errorf("failed to link tags: %w", err)
			}
		}
		return nil
	})
}

// FindByID はペットをカテゴリ・タグ・写真込みで取得します。
func (r *petGorm) FindByID(ctx context.Context, id uint) (*entity.Pet, error) {
	var pet entity.Pet
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").Preload("Photos").
		Where("id = ?", id).First(&pet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPetNotFound
		}
		return nil, err
	}
	return &pet, nil
}

// FindAll は全ペットをカテゴリ・タグ・写真込みで取得します。
func (r *petGorm) FindAll(ctx context.Context) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").Preload("Photos").
		Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// FindByStatus は指定ステータスのペットを取得します。
func (r *petGorm) FindByStatus(ctx context.Context, status entity.PetStatus) ([]entity.Pet, error) {
	var pets []entity.Pet
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").Preload("Photos").
		Where("status = ?", status).Find(&pets).Error
	if err != nil {
		return nil, err
	}
	return pets, nil
}

// Update は1トランザクション内で部分更新を行います。
// tagsが指定された場合、既存のリンク集合を完全に置換します（古いリンクは消え、
// 新しい集合のみが残る）。カテゴリ名が指定された場合はfind-or-createします。
func (r *petGorm) Update(ctx context.Context, id uint, in usecase.UpdatePetInput) (*entity.Pet, error) {
	var pet entity.Pet
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&pet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrPetNotFound
			}
			return err
		}

		if in.Name != nil {
			pet.Name = *in.Name
		}
		if in.Status != nil {
			pet.Status = *in.Status
		}
		if in.Category != nil {
			var category entity.Category
			if err := tx.Where(entity.Category{Name: *in.Category}).FirstOrCreate(&category).Error; err != nil {
				return fmt.Errorf("failed to find or create category %q: %w", *in.Category, err)
			}
			pet.CategoryID = category.ID
		}

		if err := tx.Omit(clause.Associations).Save(&pet).Error; err != nil {
			if isDuplicateEntry(err) {
				return usecase.ErrPetNameTaken
			}
			return err
		}

		if in.Tags != nil {
			tags, err := findOrCreateTags(tx, *in.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&pet).Association("Tags").Replace(&tags); err != nil {
				return fmt.Errorf("failed to replace tags: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// DeleteAvailable はステータスがavailableのペットのみを削除します。
// タグリンクと写真も同一トランザクション内で削除されます。
func (r *petGorm) DeleteAvailable(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pet entity.Pet
		if err := tx.Where("id = ?", id).First(&pet).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return usecase.ErrPetNotFound
			}
			return err
		}
		if pet.Status != entity.StatusAvailable {
			return usecase.ErrPetNotAvailable
		}

		if err := tx.Model(&pet).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tag links: %w", err)
		}
		if err := tx.Where("pet_id = ?", id).Delete(&entity.Photo{}).Error; err != nil {
			return fmt.Errorf("failed to delete photos: %w", err)
		}
		return tx.Delete(&pet).Error
	})
}

// AddPhotos はペットの存在確認の上で写真行を一括作成します。
func (r *petGorm) AddPhotos(ctx context.Context, petID uint, urls []string) ([]entity.Photo, error) {
	var pet entity.Pet
	if err := r.db.WithContext(ctx).Select("id").Where("id = ?", petID).First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPetNotFound
		}
		return nil, err
	}

	photos := make([]entity.Photo, 0, len(urls))
	for _, url := range urls {
		photos = append(photos, entity.Photo{PetID: petID, URL: url})
	}
	if err := r.db.WithContext(ctx).Create(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
