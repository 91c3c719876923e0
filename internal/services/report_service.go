package services

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"maintenance-system/internal/repositories"
)

type ReportServiceInterface interface {
	ExportStats(ctx context.Context) (*excelize.File, error)
}

// ReportService выгружает агрегаты дашборда в Excel для руководителей.
type ReportService struct {
	dashboardRepo repositories.DashboardRepositoryInterface
}

func NewReportService(dashboardRepo repositories.DashboardRepositoryInterface) ReportServiceInterface {
	return &ReportService{dashboardRepo: dashboardRepo}
}

// ExportStats - книга из двух листов: статистика по командам и по оборудованию.
func (s *ReportService) ExportStats(ctx context.Context) (*excelize.File, error) {
	teamStats, err := s.dashboardRepo.GetTeamStats(ctx)
	if err != nil {
		return nil, err
	}
	equipmentStats, err := s.dashboardRepo.GetEquipmentStats(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const teamSheet = "Команды"
	if err := f.SetSheetName("Sheet1", teamSheet); err != nil {
		return nil, fmt.Errorf("ошибка переименования листа: %w", err)
	}

	teamHeaders := []string{"Команда", "Всего", "Новые", "В работе", "Отремонтировано", "Списано"}
	for i, header := range teamHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(teamSheet, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
		}
	}
	for rowIdx, stat := range teamStats {
		values := []interface{}{
			stat.TeamName, stat.TotalCount, stat.NewCount,
			stat.InProgressCount, stat.RepairedCount, stat.ScrapCount,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(teamSheet, cell, value); err != nil {
				return nil, fmt.Errorf("ошибка записи строки: %w", err)
			}
		}
	}

	const equipmentSheet = "Оборудование"
	if _, err := f.NewSheet(equipmentSheet); err != nil {
		return nil, fmt.Errorf("ошибка создания листа: %w", err)
	}

	equipmentHeaders := []string{"Оборудование", "Всего заявок", "Завершено", "В работе"}
	for i, header := range equipmentHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(equipmentSheet, cell, header); err != nil {
			return nil, fmt.Errorf("ошибка записи заголовка: %w", err)
		}
	}
	for rowIdx, stat := range equipmentStats {
		values := []interface{}{
			stat.EquipmentName, stat.TotalCount, stat.CompletedCount, stat.InProgressCount,
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(equipmentSheet, cell, value); err != nil {
				return nil, fmt.Errorf("ошибка записи строки: %w", err)
			}
		}
	}

	return f, nil
}
