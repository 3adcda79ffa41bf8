package controllers

import (
	"quotation-backend/database"
	"quotation-backend/middlewares"
	"quotation-backend/models"

	"github.com/gofiber/fiber/v2"
)

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *fiber.Ctx) error {
	var data loginInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	var employee models.Employee
	if err := database.DB.Where("username = ?", data.Username).First(&employee).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	if err := employee.ComparePassword(data.Password); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	token, err := middlewares.GenerateJWT(employee.Id, employee.Role)
	if err != nil {
		c.Status(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"message": "could not issue token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":        employee.Id,
			"username":  employee.Username,
			"full_name": employee.FullName,
			"email":     employee.Email,
			"role":      employee.Role,
		},
	})
}

// Logout exists for symmetry with the UI; tokens are stateless, so the client
// just drops its copy.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "success",
	})
}

// Me returns the authenticated employee.
func Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var employee models.Employee
	if err := database.DB.First(&employee, "id = ?", userID).Error; err != nil {
		return err
	}
	return c.JSON(employee)
}

type bootstrapInput struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

// Bootstrap creates the first admin account. It only works while the
// employees table is empty; afterwards employee management is admin-only.
func Bootstrap(c *fiber.Ctx) error {
	var data bootstrapInput
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	var count int64
	if err := database.DB.Model(&models.Employee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		c.Status(fiber.StatusForbidden)
		return c.JSON(fiber.Map{
			"message": "already bootstrapped",
		})
	}

	employee := models.Employee{
		Username: data.Username,
		FullName: data.FullName,
		Email:    data.Email,
		Role:     models.RoleAdmin,
	}
	employee.SetPassword(data.Password)

	if err := database.DB.Create(&employee).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(employee)
}
