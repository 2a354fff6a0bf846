package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/loop2cod/SNAZ-sub000/internal/domain/repository"
	"github.com/loop2cod/SNAZ-sub000/pkg/pagination"
	"github.com/loop2cod/SNAZ-sub000/pkg/utils"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// parseID reads a UUID path parameter
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// listFilter reads the search and is_active query parameters
func listFilter(c *gin.Context) repository.ListFilter {
	filter := repository.ListFilter{Search: strings.TrimSpace(c.Query("search"))}
	if active := c.Query("is_active"); active != "" {
		if v, err := strconv.ParseBool(active); err == nil {
			filter.IsActive = &v
		}
	}
	return filter
}

func queryUUID(c *gin.Context, name string) *uuid.UUID {
	if raw := c.Query(name); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return &id
		}
	}
	return nil
}

func queryDate(c *gin.Context, name string) *time.Time {
	if raw := c.Query(name); raw != "" {
		if d, err := utils.ParseDate(raw); err == nil {
			return &d
		}
	}
	return nil
}

func queryInt(c *gin.Context, name string) *int {
	if raw := c.Query(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return &v
		}
	}
	return nil
}
