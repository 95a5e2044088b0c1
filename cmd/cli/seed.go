package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-atrium/atrium/internal/engine/conf"
	"github.com/go-atrium/atrium/internal/engine/model"
	"github.com/go-atrium/atrium/internal/engine/repo"
	"github.com/go-atrium/atrium/internal/engine/service"
	"github.com/go-atrium/atrium/pkg/ctx"
	"github.com/go-atrium/atrium/pkg/database"
	"github.com/go-atrium/atrium/pkg/log"
	"github.com/spf13/cobra"
)

var (
	seedConfigFile string
	seedCatalog    string
	seedGrantUser  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf := conf.NewConf(seedConfigFile)
		db, err := database.NewDatabase(appConf.Database)
		if err != nil {
			return err
		}
		return db.AutoMigrate(
			&model.Menu{},
			&model.MenuPermission{},
			&model.OrgUnit{},
			&model.User{},
		)
	},
}

// seedCmd 从目录文件导入菜单树
// 目录文件是一组按先父后子排列的菜单项，parentPageId 指向已导入的节点
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import the menu catalog from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf := conf.NewConf(seedConfigFile)
		logger, err := log.NewLog(&appConf.Log)
		if err != nil {
			return err
		}
		db, err := database.NewDatabase(appConf.Database)
		if err != nil {
			return err
		}

		appCtx := ctx.NewContext(context.Background(), db, nil, logger.Sugar())
		menuService := service.NewMenuService(repo.NewMenuRepo(appCtx))

		raw, err := os.ReadFile(seedCatalog)
		if err != nil {
			return err
		}
		var entries []catalogEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return fmt.Errorf("invalid catalog file: %v", err)
		}

		imported := 0
		menuIds := make([]uint64, 0, len(entries))
		for _, e := range entries {
			req := model.CreateMenuReq{
				PageId:    e.PageId,
				Name:      e.Name,
				Url:       e.Url,
				SortOrder: e.SortOrder,
			}
			if e.ParentPageId != "" {
				parent, err := menuService.GetMenuByPageId(cmd.Context(), e.ParentPageId)
				if err != nil {
					return fmt.Errorf("parent %q of %q not found, check catalog order: %v",
						e.ParentPageId, e.PageId, err)
				}
				req.ParentId = &parent.ID
			}
			menu, err := menuService.CreateMenu(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("import %q: %v", e.PageId, err)
			}
			menuIds = append(menuIds, menu.ID)
			imported++
		}
		logger.Sugar().Infof("imported %d menus from %s", imported, seedCatalog)

		// 可选: 将整个目录授权给初始管理员
		if seedGrantUser != "" {
			permService := service.NewPermissionService(repo.NewPermissionRepo(appCtx), nil)
			if err := permService.BulkGrant(cmd.Context(), seedGrantUser, menuIds); err != nil {
				return fmt.Errorf("grant catalog to %q: %v", seedGrantUser, err)
			}
			logger.Sugar().Infof("granted %d menus to %s", len(menuIds), seedGrantUser)
		}
		return nil
	},
}

type catalogEntry struct {
	PageId       string `json:"pageId"`
	ParentPageId string `json:"parentPageId"`
	Name         string `json:"name"`
	Url          string `json:"url"`
	SortOrder    int    `json:"sortOrder"`
}

func init() {
	for _, c := range []*cobra.Command{migrateCmd, seedCmd} {
		c.Flags().StringVar(&seedConfigFile, "conf", "conf.d/config.toml", "conf file path")
	}
	seedCmd.Flags().StringVar(&seedCatalog, "catalog", "conf.d/menus.json", "menu catalog file")
	seedCmd.Flags().StringVar(&seedGrantUser, "grant", "", "grant the imported catalog to this user id")
}
