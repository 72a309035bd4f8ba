package service

import (
	"sort"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
)

// FlattenReviewRows 조인 결과(리뷰 x 이미지 x 재료 x 프로필)를 리뷰 단위로 묶는다.
// 리뷰 순서는 처음 등장한 순서를 따르고, 같은 하위 항목은 한 번만 담긴다.
func FlattenReviewRows(rows []model.ReviewRow) []model.ReviewFeedItem {
	type acc struct {
		item        model.ReviewFeedItem
		ingredients map[model.IngredientEntry]struct{}
		images      map[model.ReviewImgEntry]struct{}
		profiles    map[model.ProfileImgEntry]struct{}
	}

	index := make(map[uint]int)
	var groups []*acc

	for _, row := range rows {
		pos, ok := index[row.ReviewID]
		if !ok {
			pos = len(groups)
			index[row.ReviewID] = pos
			groups = append(groups, &acc{
				item: model.ReviewFeedItem{
					ReviewID:          row.ReviewID,
					TotalLikedNum:     row.TotalLikedNum,
					MenuName:          row.MenuName,
					Content:           row.Content,
					StoreName:         row.StoreName,
					Score:             row.Score,
					CreatedDate:       row.CreatedDate,
					DessertCategoryID: row.DessertCategoryID,
					MemberID:          row.MemberID,
					MemberNickName:    row.MemberNickName,
					MemberIsHavingImg: row.MemberIsHavingImg,
					IsLiked:           row.IsLiked,
					Ingredient:        []model.IngredientEntry{},
					ReviewImg:         []model.ReviewImgEntry{},
					ProfileImg:        []model.ProfileImgEntry{},
				},
				ingredients: make(map[model.IngredientEntry]struct{}),
				images:      make(map[model.ReviewImgEntry]struct{}),
				profiles:    make(map[model.ProfileImgEntry]struct{}),
			})
		}
		g := groups[pos]

		if row.IsLiked > g.item.IsLiked {
			g.item.IsLiked = row.IsLiked
		}

		if row.IngredientName != nil {
			e := model.IngredientEntry{IngredientName: *row.IngredientName}
			if _, seen := g.ingredients[e]; !seen {
				g.ingredients[e] = struct{}{}
				g.item.Ingredient = append(g.item.Ingredient, e)
			}
		}

		if row.ReviewImgID != nil {
			e := model.ReviewImgEntry{
				ReviewImgID: *row.ReviewImgID,
				IsMain:      deref(row.ReviewImgIsMain),
				Num:         deref(row.ReviewImgNum),
				MiddlePath:  deref(row.ReviewImgMiddlePath),
				Path:        deref(row.ReviewImgPath),
				Extension:   deref(row.ReviewImgExtension),
			}
			if _, seen := g.images[e]; !seen {
				g.images[e] = struct{}{}
				g.item.ReviewImg = append(g.item.ReviewImg, e)
			}
		}

		if row.ProfilePath != nil {
			e := model.ProfileImgEntry{
				MiddlePath: deref(row.ProfileMiddlePath),
				Path:       *row.ProfilePath,
				Extension:  deref(row.ProfileExtension),
			}
			if _, seen := g.profiles[e]; !seen {
				g.profiles[e] = struct{}{}
				g.item.ProfileImg = append(g.item.ProfileImg, e)
			}
		}
	}

	items := make([]model.ReviewFeedItem, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.item.ReviewImg, func(i, j int) bool {
			return g.item.ReviewImg[i].Num < g.item.ReviewImg[j].Num
		})
		items = append(items, g.item)
	}
	return items
}

// OrderByIDs 1단계에서 조회한 id 순서대로 재정렬 (목록에 없는 항목은 제외)
func OrderByIDs(items []model.ReviewFeedItem, ids []uint) []model.ReviewFeedItem {
	byID := make(map[uint]model.ReviewFeedItem, len(items))
	for _, it := range items {
		byID[it.ReviewID] = it
	}
	ordered := make([]model.ReviewFeedItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
