package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación del administrador del catálogo.
// El usuario y el hash bcrypt vienen de configuración.
type AuthUseCase struct {
	adminUser string
	adminHash []byte
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(adminUser, adminPasswordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{adminUser: adminUser, adminHash: []byte(adminPasswordHash), jwtCfg: jwtCfg}
}

// Enabled indica si hay credenciales configuradas.
func (uc *AuthUseCase) Enabled() bool {
	return len(uc.adminHash) > 0 && uc.jwtCfg.Secret != ""
}

// Login verifica usuario/password y emite un JWT con rol admin.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if !uc.Enabled() {
		return nil, domain.ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(in.User), []byte(uc.adminUser)) != 1 {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.adminHash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.adminUser, jwt.RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: jwt.RoleAdmin}, nil
}

// HashPassword genera el hash bcrypt para AUTH_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
