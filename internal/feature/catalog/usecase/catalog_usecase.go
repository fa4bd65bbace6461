package usecase

import (
	"context"

	"petstore_backend/internal/feature/catalog/domain/entity"
)

// PetRepository はペットエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters)ではなくコンシューマー（usecase）が定義します。
// 複数テーブルに跨がる操作（カテゴリ・タグの遅延作成、タグ集合の置換）は
// 実装側で単一トランザクションとして実行されます。
type PetRepository interface {
	// CreateWithAssociations は1トランザクション内でカテゴリをfind-or-createし、
	// ペットを作成し、各タグ名をfind-or-createしてリンクします。
	// 同名のペットが既に存在する場合、ErrPetNameTakenを返します。
	CreateWithAssociations(ctx context.Context, pet *entity.Pet, categoryName string, tagNames []string) error

	// FindByID はペットをカテゴリ・タグ・写真込みで取得します。
	// 存在しない場合、ErrPetNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Pet, error)

	// FindAll は全ペットをカテゴリ・タグ・写真込みで取得します。
	FindAll(ctx context.Context) ([]entity.Pet, error)

	// FindByStatus は指定ステータスのペットを取得します。
	FindByStatus(ctx context.Context, status entity.PetStatus) ([]entity.Pet, error)

	// Update は1トランザクション内で部分更新を行います。tagsが指定された場合、
	// 既存のタグリンク集合を完全に置換します。
	Update(ctx context.Context, id uint, in UpdatePetInput) (*entity.Pet, error)

	// DeleteAvailable はステータスがavailableのペットのみを削除します。
	// ペットが存在しない場合はErrPetNotFound、存在するが注文中・販売済みの
	// 場合はErrPetNotAvailableを返します。
	DeleteAvailable(ctx context.Context, id uint) error

	// AddPhotos はペットの存在を確認した上で写真行を一括作成します。
	AddPhotos(ctx context.Context, petID uint, urls []string) ([]entity.Photo, error)
}

// CreatePetInput はペット作成の入力です。
type CreatePetInput struct {
	Category string
	Name     string
	Tags     []string
	Status   string
}

// UpdatePetInput はペットの部分更新の入力です。nilのフィールドは変更されません。
// Tagsが非nilの場合、タグ集合全体が置換されます。
type UpdatePetInput struct {
	Category *string
	Name     *string
	Tags     *[]string
	Status   *entity.PetStatus
}

// catalogUsecase はカタログのビジネスロジックを実装します。
type catalogUsecase struct {
	pets PetRepository
}

// NewCatalogUsecase はcatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(pets PetRepository) *catalogUsecase {
	return &catalogUsecase{pets: pets}
}

// CreatePet は入力を検証し、ペットをカテゴリ・タグとともに作成します。
// カテゴリとペット名は必須、ステータスは有効な値でなければなりません。
func (u *catalogUsecase) CreatePet(ctx context.Context, in CreatePetInput) (*entity.Pet, error) {
	if in.Category == "" {
		return nil, ErrCategoryRequired
	}
	if in.Name == "" {
		return nil, ErrNameRequired
	}
	status := entity.PetStatus(in.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	pet := &entity.Pet{Name: in.Name, Status: status}
	if err := u.pets.CreateWithAssociations(ctx, pet, in.Category, in.Tags); err != nil {
		return nil, err
	}
	return pet, nil
}

// GetPet はIDでペットを取得します。
func (u *catalogUsecase) GetPet(ctx context.Context, id uint) (*entity.Pet, error) {
	return u.pets.FindByID(ctx, id)
}

// GetAllPets は全ペットを取得します。
func (u *catalogUsecase) GetAllPets(ctx context.Context) ([]entity.Pet, error) {
	return u.pets.FindAll(ctx)
}

// FindByStatus は指定ステータスのペットを取得します。
// statusクエリパラメータは必須です。
func (u *catalogUsecase) FindByStatus(ctx context.Context, status string) ([]entity.Pet, error) {
	if status == "" {
		return nil, ErrStatusRequired
	}
	s := entity.PetStatus(status)
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return u.pets.FindByStatus(ctx, s)
}

// UpdatePet はペットを部分更新します。ステータスが指定された場合は検証します。
func (u *catalogUsecase) UpdatePet(ctx context.Context, id uint, in UpdatePetInput) (*entity.Pet, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if in.Category != nil && *in.Category == "" {
		return nil, ErrCategoryRequired
	}
	return u.pets.Update(ctx, id, in)
}

// DeletePet はステータスがavailableのペットのみを削除します。
// 注文中のペットを誤って消さないための防御です。
func (u *catalogUsecase) DeletePet(ctx context.Context, id uint) error {
	return u.pets.DeleteAvailable(ctx, id)
}

// AttachPhotos はアップロード済みファイルのURLを写真行として登録します。
func (u *catalogUsecase) AttachPhotos(ctx context.Context, petID uint, urls []string) ([]entity.Photo, error) {
	if len(urls) == 0 {
		return nil, ErrNoImages
	}
	return u.pets.AddPhotos(ctx, petID, urls)
}
