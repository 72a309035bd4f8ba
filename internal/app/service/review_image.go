package service

import (
	"context"
	"fmt"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/internal/storage"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// 리뷰 이미지 저장 폴더
const reviewImageFolder = "review"

// ObjectStorage 이미지 객체 저장소
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, key string) error
}

type AttachImageInput struct {
	Data      []byte
	Extension string // ".jpg"
	ImgName   string // 원본 파일명
	IsMain    bool
	Num       int
}

// AttachImage 리뷰 이미지 업로드 후 등록
// DB 등록이 실패하면 업로드한 객체를 지운다.
func (s *reviewService) AttachImage(ctx context.Context, memberID, reviewID uint, input AttachImageInput) (*model.ReviewImg, error) {
	contentType, ok := storage.ContentTypeFor(input.Extension)
	if !ok {
		return nil, ErrInvalidImage
	}
	if err := storage.ValidateFileSize(int64(len(input.Data)), storage.MaxImageSize); err != nil {
		return nil, ErrInvalidImage
	}

	review, err := s.loadOwnedReview(ctx, s.reviewRepo, memberID, reviewID, false)
	if err != nil {
		return nil, err
	}
	if !review.IsUsable {
		return nil, ErrReviewNotFound
	}

	count, err := s.imageRepo.CountByReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if count >= model.MaxReviewImages {
		return nil, ErrImageCapacityExceeded
	}

	name := storage.NewObjectName(reviewImageFolder, input.Extension, s.now())
	if _, err := s.storage.Upload(ctx, name.Key(), contentType, input.Data); err != nil {
		logger.Error("Failed to upload review image", err, map[string]interface{}{
			"review_id": reviewID,
			"key":       name.Key(),
		})
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	img := &model.ReviewImg{
		ReviewID:   reviewID,
		IsMain:     input.IsMain,
		Num:        input.Num,
		MiddlePath: name.MiddlePath,
		Path:       name.Path,
		Extension:  name.Extension,
		ImgName:    input.ImgName,
	}

	err = db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := s.reviewRepo.WithTx(tx).FindByIDForUpdate(ctx, reviewID); err != nil {
			return err
		}

		imageRepo := s.imageRepo.WithTx(tx)
		// 동시 업로드 대비 잠금 후 다시 확인
		count, err := imageRepo.CountByReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if count >= model.MaxReviewImages {
			return ErrImageCapacityExceeded
		}

		if input.IsMain {
			if err := imageRepo.ClearMain(ctx, reviewID); err != nil {
				return err
			}
		}
		return imageRepo.Create(ctx, img)
	})
	if err != nil {
		if delErr := s.storage.Delete(context.WithoutCancel(ctx), name.Key()); delErr != nil {
			logger.Warn("Failed to remove orphaned review image", map[string]interface{}{
				"key":   name.Key(),
				"error": delErr.Error(),
			})
		}
		return nil, err
	}

	logger.Info("Review image attached", map[string]interface{}{
		"review_id":     reviewID,
		"review_img_id": img.ReviewImgID,
		"is_main":       img.IsMain,
	})
	return img, nil
}

// DetachImage 리뷰 이미지 삭제
// 객체를 먼저 지우고 성공했을 때만 행을 지운다. 실패하면 행이 남아 다시 요청할 수 있다.
func (s *reviewService) DetachImage(ctx context.Context, memberID, reviewID, imageID uint) error {
	if _, err := s.loadOwnedReview(ctx, s.reviewRepo, memberID, reviewID, false); err != nil {
		return err
	}

	img, err := s.imageRepo.FindByID(ctx, reviewID, imageID)
	if err != nil {
		return err
	}
	if img == nil {
		return ErrReviewImageNotFound
	}

	if err := s.storage.Delete(ctx, img.ObjectKey()); err != nil {
		logger.Error("Failed to delete review image object", err, map[string]interface{}{
			"review_img_id": img.ReviewImgID,
			"key":           img.ObjectKey(),
		})
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	return s.imageRepo.Delete(ctx, img.ReviewImgID)
}
