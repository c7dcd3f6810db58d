package service

import (
	"errors"

	"github.com/hxann/eduscore/internal/apperr"
	"github.com/hxann/eduscore/internal/dto"
	"github.com/hxann/eduscore/internal/model"
	"github.com/hxann/eduscore/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateStudent(req dto.CreateUserRequest) (*dto.UserResponse, error)
	CreateStaff(req dto.CreateStaffRequest) (*dto.UserResponse, error)
	GetByID(id uint) (*dto.UserResponse, error)
	ChangePassword(user *model.User, req dto.ChangePasswordRequest) error
	ListStudents(classID *uint) ([]dto.UserResponse, error)
	ListStaffByDepartment(departmentID uint) ([]dto.UserResponse, error)

	GetAllDepartments() ([]dto.DepartmentResponse, error)
	GetAllClasses() ([]dto.ClassResponse, error)
}

type userService struct {
	userRepo       repository.UserRepository
	departmentRepo repository.DepartmentRepository
}

func NewUserService(userRepo repository.UserRepository, departmentRepo repository.DepartmentRepository) UserService {
	return &userService{userRepo: userRepo, departmentRepo: departmentRepo}
}

func (s *userService) CreateStudent(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if req.ClassID != nil {
		if _, err := s.departmentRepo.FindClassByID(*req.ClassID); err != nil {
			return nil, asNotFound(err, "class", *req.ClassID)
		}
	}
	return s.createUser(req.Username, req.Password, req.FirstName, req.LastName, model.RoleStudent, nil, req.ClassID)
}

func (s *userService) CreateStaff(req dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if _, err := s.departmentRepo.FindDepartmentByID(req.DepartmentID); err != nil {
		return nil, asNotFound(err, "department", req.DepartmentID)
	}
	return s.createUser(req.Username, req.Password, req.FirstName, req.LastName, model.RoleStaff, &req.DepartmentID, nil)
}

func (s *userService) createUser(username, password, firstName, lastName, role string, departmentID, classID *uint) (*dto.UserResponse, error) {
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, apperr.Conflict("username already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		DepartmentID: departmentID,
		ClassID:      classID,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", user.ID).Str("role", role).Msg("User created")

	var resp dto.UserResponse
	copier.Copy(&resp, &user)
	return &resp, nil
}

func (s *userService) GetByID(id uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, asNotFound(err, "user", id)
	}

	var resp dto.UserResponse
	copier.Copy(&resp, user)
	return &resp, nil
}

func (s *userService) ChangePassword(user *model.User, req dto.ChangePasswordRequest) error {
	if req.NewPassword != req.ConfirmNewPassword {
		return apperr.Invalid("confirm_new_password", "new passwords do not match")
	}
	if req.NewPassword == req.OldPassword {
		return apperr.Invalid("new_password", "must differ from the old password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return apperr.Invalid("old_password", "old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.userRepo.Update(user)
}

func (s *userService) ListStudents(classID *uint) ([]dto.UserResponse, error) {
	students, err := s.userRepo.FindStudentsByClass(classID)
	if err != nil {
		return nil, err
	}
	return usersToDTO(students), nil
}

func (s *userService) ListStaffByDepartment(departmentID uint) ([]dto.UserResponse, error) {
	if _, err := s.departmentRepo.FindDepartmentByID(departmentID); err != nil {
		return nil, asNotFound(err, "department", departmentID)
	}
	staff, err := s.userRepo.FindStaffByDepartment(departmentID)
	if err != nil {
		return nil, err
	}
	return usersToDTO(staff), nil
}

func (s *userService) GetAllDepartments() ([]dto.DepartmentResponse, error) {
	departments, err := s.departmentRepo.FindAllDepartments()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		var d dto.DepartmentResponse
		copier.Copy(&d, &departments[i])
		resp = append(resp, d)
	}
	return resp, nil
}

func (s *userService) GetAllClasses() ([]dto.ClassResponse, error) {
	classes, err := s.departmentRepo.FindAllClasses()
	if err != nil {
		return nil, err
	}

	resp := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		var c dto.ClassResponse
		copier.Copy(&c, &classes[i])
		resp = append(resp, c)
	}
	return resp, nil
}

func usersToDTO(users []model.User) []dto.UserResponse {
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		var u dto.UserResponse
		copier.Copy(&u, &users[i])
		resp = append(resp, u)
	}
	return resp
}
