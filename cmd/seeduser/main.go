// Command seeduser creates or resets a user.
// Uso: go run ./cmd/seeduser -username admin -password secreto123 -rol admin
package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"posbuddy/internal/config"
	"posbuddy/internal/infra"
	"posbuddy/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	username := flag.String("username", "admin", "nombre de usuario")
	password := flag.String("password", "", "contraseña (mínimo 8 caracteres)")
	nombre := flag.String("nombre", "Administrador", "nombre para mostrar")
	rol := flag.String("rol", model.RolAdmin, "admin | cajero")
	flag.Parse()
	*username = strings.ToLower(strings.TrimSpace(*username))

	if len(*password) < 8 {
		log.Fatal().Msg("-password debe tener al menos 8 caracteres")
	}
	if *rol != model.RolAdmin && *rol != model.RolCajero {
		log.Fatal().Str("rol", *rol).Msg("rol inválido")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt")
	}

	result := db.WithContext(context.Background()).Exec(`
		INSERT INTO usuarios (username, nombre, password_hash, rol, activo)
		VALUES (?, ?, ?, ?, true)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    nombre = EXCLUDED.nombre,
		    rol = EXCLUDED.rol,
		    activo = true
	`, *username, *nombre, string(hash), *rol)
	if result.Error != nil {
		log.Fatal().Err(result.Error).Msg("insert")
	}
	log.Info().Str("username", *username).Str("rol", *rol).Msg("usuario creado/actualizado")
}
