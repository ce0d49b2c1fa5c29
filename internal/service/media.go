package service

import (
	"context"
	"fmt"

	"motorist/internal/db"
	"motorist/internal/reports"
	"motorist/internal/telegram_api"
	"motorist/internal/utils"
)

// PhotoIDs возвращает file_id фотографий заказа.
func (s *AdminService) PhotoIDs(ctx context.Context, orderID int64) ([]string, error) {
	o, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return o.PhotoIDs(), nil
}

// OpenPhoto открывает n-е (с единицы) фото заказа для проксирования.
func (s *AdminService) OpenPhoto(ctx context.Context, orderID int64, n int) (*telegram_api.RemoteFile, error) {
	if s.files == nil {
		return nil, ErrPhotosUnavailable
	}
	ids, err := s.PhotoIDs(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > len(ids) {
		return nil, fmt.Errorf("%w: заказ #%d, фото %d", ErrPhotoNotFound, orderID, n)
	}
	return s.files.OpenFile(ctx, ids[n-1])
}

// PhoneQR возвращает PNG с QR-кодом ссылки tel: для телефона из заказа.
func (s *AdminService) PhoneQR(ctx context.Context, orderID int64) ([]byte, error) {
	view, err := s.orderView(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if view.PhoneLink == "" {
		return nil, ErrNoPhone
	}
	return utils.GenerateTelQRCode(view.PhoneLink)
}

// ExportOrders формирует xlsx со списком заказов по тем же условиям, что и ListOrders.
func (s *AdminService) ExportOrders(ctx context.Context, q ListQuery) ([]byte, error) {
	f, err := s.filterFor(q)
	if err != nil {
		return nil, err
	}
	views, err := s.listViews(ctx, q)
	if err != nil {
		return nil, err
	}
	rows := make([]reports.OrderRow, 0, len(views))
	for _, v := range views {
		rows = append(rows, reports.OrderRow{
			ID:           v.ID,
			Date:         v.CreatedText,
			Type:         v.TypeText,
			Status:       v.StatusText,
			Client:       v.FullName.OrEmpty(),
			Username:     v.Username.OrEmpty(),
			Phone:        v.Phone,
			WorkType:     v.WorkType.OrEmpty(),
			Dimensions:   v.DimensionsInfo.OrEmpty(),
			Conditions:   v.Conditions.OrEmpty(),
			Urgency:      v.Urgency.OrEmpty(),
			Comment:      v.Comment.OrEmpty(),
			InternalNote: v.InternalNote.OrEmpty(),
		})
	}
	return reports.BuildOrdersWorkbook(reportTitle(f), rows)
}

// reportTitle - заголовок отчёта по периоду выборки, например "Заказы за май 2024".
func reportTitle(f db.OrderFilter) string {
	if f.From.IsZero() {
		return "Заказы за всё время"
	}
	return fmt.Sprintf("Заказы за %s %d", utils.GetRussianMonthName(f.From.Month()), f.From.Year())
}
