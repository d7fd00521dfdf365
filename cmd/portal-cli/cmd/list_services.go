package cmd

import (
	"fmt"
	"go/constant"
	"go/types"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/tools/go/packages"

	"github.com/nfrund/clubportal/cmd/portal-cli/internal/output"
)

var servicesDir string

// listServicesCmd represents the list-services command
var listServicesCmd = &cobra.Command{
	Use:   "list-services",
	Short: "Lists all services discoverable via the service registry",
	Long: `Type-checks the module and reports every registry.Key constant, i.e. every
service a portal module can resolve at runtime, with the type it resolves to.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := output.CheckFormat(formatFlag); err != nil {
			return err
		}
		services, err := findRegistryKeys(servicesDir)
		if err != nil {
			return fmt.Errorf("failed to find registry keys: %w", err)
		}
		return output.Services(cmd.OutOrStdout(), formatFlag, services)
	},
}

func init() {
	listServicesCmd.Flags().StringVar(&servicesDir, "dir", "./", "Module root to scan")
	rootCmd.AddCommand(listServicesCmd)
}

// findRegistryKeys loads every package under root and collects the
// package-level constants and variables typed registry.Key[T].
func findRegistryKeys(root string) ([]output.Service, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes,
		Dir:  root,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if n := packages.PrintErrors(pkgs); n > 0 {
		return nil, fmt.Errorf("%d package errors", n)
	}
	return registryKeys(pkgs), nil
}

func registryKeys(pkgs []*packages.Package) []output.Service {
	var services []output.Service
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			typeArg, ok := registryKeyType(obj.Type())
			if !ok {
				continue
			}
			svc := output.Service{
				Key:  name,
				Type: types.TypeString(typeArg, (*types.Package).Name),
			}
			if c, ok := obj.(*types.Const); ok && c.Val().Kind() == constant.String {
				svc.Key = constant.StringVal(c.Val())
			}
			services = append(services, svc)
		}
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Key < services[j].Key })
	return services
}

// registryKeyType returns T when t is registry.Key[T].
func registryKeyType(t types.Type) (types.Type, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Name() != "Key" || named.Obj().Pkg() == nil {
		return nil, false
	}
	if !strings.HasSuffix(named.Obj().Pkg().Path(), "internal/registry") {
		return nil, false
	}
	args := named.TypeArgs()
	if args.Len() != 1 {
		return nil, false
	}
	return args.At(0), true
}
