package main

import (
	"fmt"
	"time"

	"github.com/vendora-market/internal/config"
	"github.com/vendora-market/internal/constants"
	"github.com/vendora-market/internal/logger"
	"github.com/vendora-market/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "电子产品",
				"en-US": "Electronics",
			}),
			Slug: "electronics",
		},
		{
			NameJSON: models.JSON(map[string]interface{}{
				"zh-CN": "生活用品",
				"en-US": "Lifestyle",
			}),
			Slug: "lifestyle",
		},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"electronics", "lifestyle"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	electronicsID := categoryIDs["electronics"]
	lifestyleID := categoryIDs["lifestyle"]

	// 添加演示账号
	users := []models.User{
		{Email: "buyer@example.com", DisplayName: "演示买家"},
		{Email: "seller@example.com", DisplayName: "演示店主"},
	}
	for _, user := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
			if err != nil {
				stdLog.Fatalf("Failed to hash password: %v", err)
			}
			user.PasswordHash = string(hash)
			user.Status = constants.UserStatusActive
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Email, err)
			} else {
				stdLog.Printf("Created user: %s", user.Email)
			}
		} else {
			stdLog.Printf("User already exists: %s", user.Email)
		}
	}

	var buyer, sellerOwner models.User
	if err := models.DB.Where("email = ?", "buyer@example.com").First(&buyer).Error; err != nil {
		stdLog.Fatalf("Failed to load buyer: %v", err)
	}
	if err := models.DB.Where("email = ?", "seller@example.com").First(&sellerOwner).Error; err != nil {
		stdLog.Fatalf("Failed to load seller owner: %v", err)
	}

	// 添加演示店铺
	var store models.Store
	if err := models.DB.Where("slug = ?", "demo-store").First(&store).Error; err != nil {
		store = models.Store{
			Name:         "演示店铺",
			Slug:         "demo-store",
			OwnerUserID:  sellerOwner.ID,
			ContactEmail: "seller@example.com",
			Status:       "active",
		}
		if err := models.DB.Create(&store).Error; err != nil {
			stdLog.Fatalf("Failed to create store: %v", err)
		}
		stdLog.Printf("Created store: %s", store.Slug)
	} else {
		stdLog.Printf("Store already exists: %s", store.Slug)
	}

	// 添加演示商品
	products := []models.Product{
		{
			StoreID:    store.ID,
			CategoryID: &electronicsID,
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "无线蓝牙耳机",
				"en-US": "Wireless Bluetooth Earphones",
			}),
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Currency: "CNY",
			Status:   "active",
		},
		{
			StoreID:    store.ID,
			CategoryID: &lifestyleID,
			TitleJSON: models.JSON(map[string]interface{}{
				"zh-CN": "保温水杯",
				"en-US": "Thermos Bottle",
			}),
			Price:    models.NewMoneyFromDecimal(decimal.NewFromFloat(39.50)),
			Currency: "CNY",
			Status:   "active",
		},
	}
	var productCount int64
	models.DB.Model(&models.Product{}).Where("store_id = ?", store.ID).Count(&productCount)
	if productCount == 0 {
		for i := range products {
			if err := models.DB.Create(&products[i]).Error; err != nil {
				stdLog.Printf("Failed to create product: %v", err)
			}
		}
		stdLog.Printf("Created %d products", len(products))
	} else {
		stdLog.Printf("Products already exist, skipped")
		if err := models.DB.Where("store_id = ?", store.ID).Order("id ASC").Find(&products).Error; err != nil {
			stdLog.Fatalf("Failed to load products: %v", err)
		}
	}

	// 添加已送达的演示订单（可直接用于发起售后）
	var orderCount int64
	models.DB.Model(&models.Order{}).Where("buyer_id = ?", buyer.ID).Count(&orderCount)
	if orderCount == 0 {
		now := time.Now()
		paidAt := now.Add(-6 * 24 * time.Hour)
		deliveredAt := now.Add(-3 * 24 * time.Hour)

		total := products[0].Price.Decimal.Mul(decimal.NewFromInt(2)).Add(products[1].Price.Decimal)
		order := models.Order{
			OrderNo:     fmt.Sprintf("ORD-%s-0001", now.Format("20060102")),
			BuyerID:     buyer.ID,
			Currency:    "CNY",
			TotalAmount: models.NewMoneyFromDecimal(total),
			PaidAt:      &paidAt,
		}
		if err := models.DB.Create(&order).Error; err != nil {
			stdLog.Fatalf("Failed to create order: %v", err)
		}

		subOrder := models.SubOrder{
			OrderID:     order.ID,
			SubOrderNo:  fmt.Sprintf("SUB-%s-0001", now.Format("20060102")),
			StoreID:     store.ID,
			BuyerID:     buyer.ID,
			Status:      constants.SubOrderStatusDelivered,
			Currency:    "CNY",
			TotalAmount: order.TotalAmount,
		}
		if err := models.DB.Create(&subOrder).Error; err != nil {
			stdLog.Fatalf("Failed to create sub-order: %v", err)
		}

		items := []models.SubOrderItem{
			{
				SubOrderID: subOrder.ID,
				ProductID:  products[0].ID,
				CategoryID: products[0].CategoryID,
				TitleJSON:  products[0].TitleJSON,
				UnitPrice:  products[0].Price,
				Quantity:   2,
				TotalPrice: models.NewMoneyFromDecimal(products[0].Price.Decimal.Mul(decimal.NewFromInt(2))),
			},
			{
				SubOrderID: subOrder.ID,
				ProductID:  products[1].ID,
				CategoryID: products[1].CategoryID,
				TitleJSON:  products[1].TitleJSON,
				UnitPrice:  products[1].Price,
				Quantity:   1,
				TotalPrice: products[1].Price,
			},
		}
		for i := range items {
			if err := models.DB.Create(&items[i]).Error; err != nil {
				stdLog.Fatalf("Failed to create sub-order item: %v", err)
			}
		}

		histories := []models.SubOrderStatusHistory{
			{SubOrderID: subOrder.ID, FromStatus: constants.SubOrderStatusPendingPayment, ToStatus: constants.SubOrderStatusPaid, CreatedAt: paidAt},
			{SubOrderID: subOrder.ID, FromStatus: constants.SubOrderStatusPaid, ToStatus: constants.SubOrderStatusShipped, CreatedAt: paidAt.Add(24 * time.Hour)},
			{SubOrderID: subOrder.ID, FromStatus: constants.SubOrderStatusShipped, ToStatus: constants.SubOrderStatusDelivered, CreatedAt: deliveredAt},
		}
		for i := range histories {
			if err := models.DB.Create(&histories[i]).Error; err != nil {
				stdLog.Fatalf("Failed to create status history: %v", err)
			}
		}
		stdLog.Printf("Created delivered demo order: %s", subOrder.SubOrderNo)
	} else {
		stdLog.Printf("Demo orders already exist, skipped")
	}

	// 添加 SLA 策略
	slaConfigs := []models.SLAConfig{
		{CategoryID: nil, RequestType: "", FirstResponseHours: 24, ResolutionHours: 168, IsActive: true},
		{CategoryID: &electronicsID, RequestType: constants.ReturnTypeReturn, FirstResponseHours: 12, ResolutionHours: 72, IsActive: true},
		{CategoryID: nil, RequestType: constants.ReturnTypeComplaint, FirstResponseHours: 8, ResolutionHours: 48, IsActive: true},
	}
	var slaCount int64
	models.DB.Model(&models.SLAConfig{}).Count(&slaCount)
	if slaCount == 0 {
		for i := range slaConfigs {
			if err := models.DB.Create(&slaConfigs[i]).Error; err != nil {
				stdLog.Printf("Failed to create SLA config: %v", err)
			}
		}
		stdLog.Printf("Created %d SLA configs", len(slaConfigs))
	} else {
		stdLog.Printf("SLA configs already exist, skipped")
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	stdLog.Printf("Seed finished")
}
