package postgres

import (
	"database/sql"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/fintrackhq/fintrack/internal"
	"github.com/fintrackhq/fintrack/internal/auth"
	userDatamodel "github.com/fintrackhq/fintrack/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, internal.ErrUserNotFound
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetUserByID(userID int64) (*auth.User, error) {
	var dm userDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&dm).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return fromDataModel(&dm), nil
}

func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateUser(u *auth.User, passwordHash string) error {
	roles, err := json.Marshal(u.Roles)
	if err != nil {
		return err
	}

	dm := &userDatamodel.User{
		Email:        u.Email,
		PasswordHash: passwordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Roles:        string(roles),
	}
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	return nil
}

func fromDataModel(dm *userDatamodel.User) *auth.User {
	var roles []string
	// tolerate malformed roles rather than failing the login path
	_ = json.Unmarshal([]byte(dm.Roles), &roles)

	return &auth.User{
		ID:        dm.ID,
		Email:     dm.Email,
		FirstName: dm.FirstName,
		LastName:  dm.LastName,
		Roles:     roles,
	}
}
