// seed reinicia la instantánea del portal en el almacenamiento configurado (STORE_DRIVER).
//
// Uso:
//
//	go run ./cmd/seed          # escribe los datos de demostración
//	go run ./cmd/seed -empty   # escribe un estado vacío
//	go run ./cmd/seed -reset   # borra la instantánea; el servidor sembrará al arrancar
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/internal/infrastructure/persistence"
	"github.com/jhoicas/portal-admin/pkg/config"
)

func main() {
	empty := flag.Bool("empty", false, "escribir un estado vacío en lugar de los datos de demostración")
	reset := flag.Bool("reset", false, "borrar la instantánea guardada")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, closeRepo, err := persistence.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacenamiento (%s): %v\n", cfg.Store.Driver, err)
		os.Exit(1)
	}
	defer closeRepo()

	if *reset {
		if err := repo.Reset(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Borrar instantánea: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Instantánea borrada (%s)\n", cfg.Store.Driver)
		return
	}

	state := store.Seed(time.Now().UTC())
	if *empty {
		state = entity.State{}
	}
	if err := repo.Save(ctx, &state); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar instantánea: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Instantánea escrita (%s): %d empresas, %d usuarios, %d productos\n",
		cfg.Store.Driver, len(state.Companies), len(state.Users), len(state.Products))
}
