package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/elethan/lina/internal/repository"
	"github.com/elethan/lina/internal/service"
	"github.com/elethan/lina/pkg/database"
)

func seedCmd(configPath *string) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "写入开发环境管理员与默认角色授权",
		Long: `幂等写入：
- role_permissions 默认授权（已存在的组合跳过）
- seed.admin_email 对应的 admin 账号（已存在时跳过）

管理员初始密码读取 seed.admin_password（或 LINA_SEED_ADMIN_PASSWORD）。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer a.close()

			if !skipMigrate {
				if err := database.RunMigrations(a.db, a.cfg.Database.Driver, a.logger); err != nil {
					return err
				}
			}

			seeder := service.NewSeedService(repository.NewRepository(a.db), a.logger)
			result, err := seeder.Seed(cmd.Context(), &a.cfg.Seed)
			if err != nil {
				color.Red("✗ 种子数据写入失败: %v", err)
				return err
			}

			color.Green("✓ 默认授权 %d 条已就绪", result.Permissions)
			if result.AdminCreated {
				color.Green("✓ 已创建管理员 %s", result.AdminEmail)
			} else {
				fmt.Printf("%s 管理员 %s 已存在，跳过\n", color.YellowString("-"), result.AdminEmail)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "跳过迁移直接写入")
	return cmd
}
