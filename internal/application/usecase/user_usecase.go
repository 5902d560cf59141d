package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// UserUseCase CRUD de usuarios. Las contraseñas se hashean con bcrypt antes de
// persistir; el hash nunca sale en las respuestas.
type UserUseCase struct {
	userRepo repository.UserRepository
	posRepo  repository.PointOfSaleRepository
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(userRepo repository.UserRepository, posRepo repository.PointOfSaleRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo, posRepo: posRepo}
}

// Create registra un usuario. Devuelve ErrEmailAlreadyExists si el email ya existe
// y ErrNotFound si el punto de venta asignado no existe.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if in.PuntoVentaID != nil {
		pos, err := uc.posRepo.GetByID(ctx, *in.PuntoVentaID)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			return nil, domain.ErrNotFound
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:            uuid.New().String(),
		Name:          in.Nombre,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Role:          in.Rol,
		PointOfSaleID: in.PuntoVentaID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Get devuelve un usuario por id.
func (uc *UserUseCase) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// List devuelve los usuarios, filtrando por nombre o email cuando q no es vacío.
func (uc *UserUseCase) List(ctx context.Context, q string, page dto.PageRequest) ([]*dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(ctx, q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Update aplica la actualización parcial con campos explícitos, revalidando la
// unicidad del email y la existencia del punto de venta cuando cambian.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil && *in.Email != user.Email {
		existing, err := uc.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
		user.Email = *in.Email
	}
	if in.PuntoVentaID != nil {
		pos, err := uc.posRepo.GetByID(ctx, *in.PuntoVentaID)
		if err != nil {
			return nil, err
		}
		if pos == nil {
			return nil, domain.ErrNotFound
		}
		user.PointOfSaleID = in.PuntoVentaID
	}
	if in.Nombre != nil {
		user.Name = *in.Nombre
	}
	if in.Rol != nil {
		user.Role = *in.Rol
	}
	if in.Contrasena != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Contrasena), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario. Los movimientos que lo referencian conservan su
// usuario_id (el log es inmutable); la FK es ON DELETE SET NULL a nivel de esquema.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.userRepo.Delete(ctx, id)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:           u.ID,
		Nombre:       u.Name,
		Email:        u.Email,
		Rol:          u.Role,
		PuntoVentaID: u.PointOfSaleID,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
