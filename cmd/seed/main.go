package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ikkim/dessert-review-backend/config"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

const batchSize = 500

// categoryGroup 1차 카테고리와 하위 2차 카테고리 이름
type categoryGroup struct {
	Top    string
	Leaves []string
}

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}
	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	groups, err := readCategoriesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	leafCount := 0
	for _, g := range groups {
		leafCount += len(g.Leaves)
	}
	fmt.Printf("Categories to import: %d top, %d leaf\n", len(groups), leafCount)

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	created, err := importCategories(context.Background(), categoryRepo, groups)
	if err != nil {
		log.Fatal("Failed to import categories:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total categories imported: %d\n", created)
}

func readCategoriesFromXLSX(filePath string) ([]categoryGroup, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	return parseCategoryRows(rows)
}

// parseCategoryRows 첫 행(헤더)을 건너뛰고 [1차, 2차] 열을 묶는다
// 1차 칸이 비어 있으면 윗 행의 1차 카테고리를 이어 쓴다 (병합 셀).
func parseCategoryRows(rows [][]string) ([]categoryGroup, error) {
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var groups []categoryGroup
	index := make(map[string]int)
	seenLeaf := make(map[string]bool)
	current := ""

	for _, row := range rows[1:] {
		top, leaf := cell(row, 0), cell(row, 1)
		if top != "" {
			current = top
		}
		if current == "" {
			continue
		}

		i, ok := index[current]
		if !ok {
			i = len(groups)
			index[current] = i
			groups = append(groups, categoryGroup{Top: current})
		}

		key := current + "|" + leaf
		if leaf == "" || seenLeaf[key] {
			continue
		}
		seenLeaf[key] = true
		groups[i].Leaves = append(groups[i].Leaves, leaf)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no category rows found")
	}
	return groups, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// importCategories 이미 있는 이름은 건너뛰고 1차, 2차 순서로 등록
func importCategories(ctx context.Context, repo repository.CategoryRepository, groups []categoryGroup) (int, error) {
	existingTop, err := repo.ListBySession(ctx, model.CategorySessionTop)
	if err != nil {
		return 0, err
	}
	topIDs := make(map[string]uint, len(existingTop))
	for _, c := range existingTop {
		topIDs[c.DessertName] = c.DessertCategoryID
	}

	var newTops []model.DessertCategory
	for _, g := range groups {
		if _, ok := topIDs[g.Top]; !ok {
			newTops = append(newTops, model.DessertCategory{DessertName: g.Top, SessionNum: model.CategorySessionTop})
		}
	}
	if len(newTops) > 0 {
		if err := repo.BulkCreate(newTops, batchSize); err != nil {
			return 0, fmt.Errorf("failed to create top categories: %w", err)
		}
		for _, c := range newTops {
			topIDs[c.DessertName] = c.DessertCategoryID
		}
	}

	existingLeaf, err := repo.ListBySession(ctx, model.CategorySessionLeaf)
	if err != nil {
		return 0, err
	}
	leafSeen := make(map[string]bool, len(existingLeaf))
	for _, c := range existingLeaf {
		leafSeen[fmt.Sprintf("%d|%s", c.ParentDCID, c.DessertName)] = true
	}

	var newLeaves []model.DessertCategory
	for _, g := range groups {
		parentID := topIDs[g.Top]
		for _, name := range g.Leaves {
			if leafSeen[fmt.Sprintf("%d|%s", parentID, name)] {
				continue
			}
			newLeaves = append(newLeaves, model.DessertCategory{
				DessertName: name,
				ParentDCID:  parentID,
				SessionNum:  model.CategorySessionLeaf,
			})
		}
	}
	if len(newLeaves) > 0 {
		if err := repo.BulkCreate(newLeaves, batchSize); err != nil {
			return 0, fmt.Errorf("failed to create leaf categories: %w", err)
		}
	}

	return len(newTops) + len(newLeaves), nil
}
