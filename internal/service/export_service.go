package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"iyf-showcase/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoStudents   = errors.New("没有可导出的学员")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出学员名录为 Excel (.xlsx)，列：ID / 姓名 / 赛季 / 作品集链接
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	ExportStudents(ctx context.Context, seasonID *int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const studentsSheet = "Students"

// ExportStudents 返回值：buf（Excel 内容）, filename（建议文件名）, error
func (s *exportService) ExportStudents(ctx context.Context, seasonID *int) (*bytes.Buffer, string, error) {
	students, err := s.repo.Student.List(ctx, repository.StudentFilter{SeasonID: seasonID, WithSeason: true})
	if err != nil {
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, "", err
	}
	if len(students) == 0 {
		return nil, "", ErrExportNoStudents
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", studentsSheet); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	header := []interface{}{"ID", "Name", "Season", "Profile URL"}
	if err := f.SetSheetRow(studentsSheet, "A1", &header); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	for i := range students {
		st := &students[i]
		seasonName := ""
		if st.Season != nil {
			seasonName = st.Season.Name
		}
		row := []interface{}{st.ID, st.Name, seasonName, deref(st.ProfileURL)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(studentsSheet, cell, &row); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
		}
	}

	_ = f.SetColWidth(studentsSheet, "B", "B", 28)
	_ = f.SetColWidth(studentsSheet, "C", "C", 16)
	_ = f.SetColWidth(studentsSheet, "D", "D", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", fmt.Errorf("%w: %v", ErrExportGenerateFail, err)
	}

	filename := "students-all-seasons.xlsx"
	if seasonID != nil {
		filename = fmt.Sprintf("students-season-%d.xlsx", *seasonID)
	}
	return buf, filename, nil
}
